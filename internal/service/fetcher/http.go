package fetcher

import (
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// HTTPFetcher http.Client로 실제 요청을 수행하는 최하위 Fetcher입니다.
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 요청 전체 타임아웃이 timeout인 HTTPFetcher를 생성합니다. 0 이하이면 30초를 사용합니다.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, NewErrRequestFailed(err, req)
	}
	return resp, nil
}

// Client 내부 http.Client를 반환합니다. 텔레그램 클라이언트처럼 http.Client를 직접 받는 곳에서 사용합니다.
func (h *HTTPFetcher) Client() *http.Client {
	return h.client
}
