package fetcher

import (
	"net/http"
	"time"

	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/darkkaiser/stock-notifier/pkg/strutils"
)

// LoggingFetcher 요청 메서드, URL, 소요 시간, 상태 코드를 기록합니다.
type LoggingFetcher struct {
	delegate Fetcher

	// maskPath URL 경로 자체가 비밀 값인 경우(웹훅 주소 등) 경로를 가립니다.
	maskPath bool
}

var _ Fetcher = (*LoggingFetcher)(nil)

func NewLoggingFetcher(delegate Fetcher, maskPath bool) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate, maskPath: maskPath}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := f.delegate.Do(req)

	u := redactURL(req.URL)
	if f.maskPath {
		u = strutils.MaskURLPath(u)
	}
	fields := applog.Fields{
		"method":   req.Method,
		"url":      u,
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		applog.WithComponentAndFields(component, fields).
			WithError(err).
			Warn("HTTP 요청 실패")
		return resp, err
	}

	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 완료")
	return resp, nil
}
