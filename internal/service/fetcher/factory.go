package fetcher

import (
	"time"
)

// Config Fetcher 체인 구성 설정입니다.
type Config struct {
	// Timeout 요청 하나의 전체 타임아웃 (0: 30초)
	Timeout time.Duration

	// MaxBytes 응답 본문 최대 크기 (0: 10MB, NoLimit: 제한 없음)
	MaxBytes int64

	// AllowedStatusCodes 허용할 상태 코드 (비어 있으면 2xx)
	AllowedStatusCodes []int

	// UserAgents User-Agent가 없는 요청에 무작위로 설정할 목록 (비어 있으면 기본 목록)
	UserAgents []string

	// RateLimit 초당 허용 요청 수 (0: 제한 없음)
	RateLimit float64
	RateBurst int

	// MaskURLPath 로그에 URL 경로를 가려서 남길지 여부
	MaskURLPath bool
}

// New 설정에 따라 Fetcher 체인을 구성합니다.
//
//	RateLimit → Logging → UserAgent → StatusCode → MaxBytes → HTTP
//
// 속도 제한 대기 시간이 요청 소요 시간에 섞이지 않도록 로깅을 제한기 안쪽에 둡니다.
func New(cfg Config) Fetcher {
	var f Fetcher = NewHTTPFetcher(cfg.Timeout)
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)
	f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	f = NewUserAgentFetcher(f, cfg.UserAgents)
	f = NewLoggingFetcher(f, cfg.MaskURLPath)
	f = NewRateLimitFetcher(f, cfg.RateLimit, cfg.RateBurst)
	return f
}
