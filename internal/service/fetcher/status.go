package fetcher

import (
	"io"
	"net/http"
	"slices"
	"strings"
)

// maxErrorBodySnippet 상태 코드 에러 메시지에 포함할 본문의 최대 크기
const maxErrorBodySnippet = 512

// StatusCodeFetcher 허용되지 않은 상태 코드의 응답을 에러로 바꿉니다.
// 허용 목록이 비어 있으면 2xx 전체를 허용합니다.
type StatusCodeFetcher struct {
	delegate Fetcher
	allowed  []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

func NewStatusCodeFetcher(delegate Fetcher, allowed ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate, allowed: allowed}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return resp, err
	}

	if err := CheckResponseStatus(resp, f.allowed...); err != nil {
		drainAndCloseBody(resp.Body)
		return nil, err
	}
	return resp, nil
}

// CheckResponseStatus 응답의 상태 코드를 검사합니다. 실패 시 본문 앞부분을 에러 메시지에 포함하며,
// 읽은 만큼 Body가 소모됩니다.
func CheckResponseStatus(resp *http.Response, allowed ...int) error {
	if len(allowed) == 0 {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
	} else if slices.Contains(allowed, resp.StatusCode) {
		return nil
	}

	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySnippet))
		snippet = strings.TrimSpace(string(b))
	}

	var rawURL string
	if resp.Request != nil {
		rawURL = redactURL(resp.Request.URL)
	}
	return NewErrUnexpectedStatus(resp.StatusCode, rawURL, snippet)
}
