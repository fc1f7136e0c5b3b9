package fetcher

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitFetcher 요청 빈도를 토큰 버킷으로 제한합니다.
// 토큰이 없으면 요청 컨텍스트가 끝날 때까지 대기합니다.
type RateLimitFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher 초당 perSecond 회, 최대 burst 회까지 허용합니다.
// perSecond가 0 이하이면 제한 없이 delegate를 그대로 반환합니다.
func NewRateLimitFetcher(delegate Fetcher, perSecond float64, burst int) Fetcher {
	if perSecond <= 0 {
		return delegate
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, NewErrRateLimitWait(err)
	}
	return f.delegate.Do(req)
}
