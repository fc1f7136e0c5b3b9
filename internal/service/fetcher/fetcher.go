// Package fetcher HTTP 요청을 수행하는 Fetcher와, 이를 감싸 기능을 덧붙이는 데코레이터들을 제공합니다.
//
// 재고 페이지 조회와 웹훅 전송은 모두 이 패키지의 체인을 통해 나갑니다:
//
//	RateLimit → Logging → UserAgent → StatusCode → MaxBytes → HTTP
package fetcher

import (
	"context"
	"net/http"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행합니다.
//
// 에러 없이 반환된 응답의 Body는 호출자가 닫아야 합니다.
// 에러가 반환된 경우 응답은 nil이며 Body는 이미 정리되어 있습니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get GET 요청을 만들어 f로 수행합니다. header의 값은 요청 헤더로 설정됩니다.
func Get(ctx context.Context, f Fetcher, url string, header map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewErrInvalidRequest(err, url)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}
	return resp, nil
}
