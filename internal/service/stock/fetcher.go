// Package stock 상위 페이지에서 재고 데이터를 가져와 Snapshot으로 변환합니다.
package stock

import (
	"context"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/fetcher"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "stock.fetcher"

// DefaultMarkerKey 응답 본문에서 재고 데이터 객체를 가리키는 키
const DefaultMarkerKey = "stockDataSSR"

// Fetcher 상위 페이지를 한 번 요청하여 재고 스냅샷을 만듭니다. 재시도하지 않습니다.
type Fetcher struct {
	f         fetcher.Fetcher
	url       string
	headers   map[string]string
	markerKey string
}

var _ contract.SnapshotFetcher = (*Fetcher)(nil)

// NewFetcher markerKey가 비어 있으면 DefaultMarkerKey를 사용합니다.
func NewFetcher(f fetcher.Fetcher, url string, headers map[string]string, markerKey string) *Fetcher {
	if markerKey == "" {
		markerKey = DefaultMarkerKey
	}
	return &Fetcher{
		f:         f,
		url:       url,
		headers:   headers,
		markerKey: markerKey,
	}
}

// Fetch 페이지를 요청하고, 재고 객체를 추출하여 정규화된 Snapshot을 반환합니다.
func (s *Fetcher) Fetch(ctx context.Context) (*contract.Snapshot, error) {
	text, err := s.fetchText(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractObject(text, s.markerKey)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(raw) {
		return nil, NewErrInvalidJSON(s.markerKey, len(raw))
	}

	snap := Normalize(raw)

	applog.WithComponentAndFields(component, applog.Fields{
		"gears":     len(snap.Gears),
		"seeds":     len(snap.Seeds),
		"eggs":      len(snap.Eggs),
		"honey":     len(snap.Honey),
		"cosmetics": len(snap.Cosmetics),
	}).Debug("재고 데이터 조회 완료")

	return &snap, nil
}

func (s *Fetcher) fetchText(ctx context.Context) (string, error) {
	resp, err := fetcher.Get(ctx, s.f, s.url, s.headers)
	if err != nil {
		return "", NewErrFetchFailed(err)
	}
	defer resp.Body.Close()

	text, err := fetcher.ReadText(resp)
	if err != nil {
		return "", NewErrFetchFailed(err)
	}
	return text, nil
}
