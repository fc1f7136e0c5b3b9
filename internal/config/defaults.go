package config

import (
	"time"
)

const (
	DefaultUpstreamURL = "https://growagarden.gg/stocks?_rsc=14g5d"
	DefaultMarkerKey   = "stockDataSSR"

	DefaultUpstreamTimeout = 30 * time.Second
	DefaultWebhookTimeout  = 15 * time.Second

	// 웹훅 전송 속도 (초당 1회, 한 주기에 최대 3개 채널)
	DefaultWebhookRateLimit = 1.0
	DefaultWebhookRateBurst = 3

	DefaultInterval = time.Minute

	DefaultStorageDir = "data"
	DefaultStorageKey = "lastStockMessages"

	DefaultFailureThreshold = 5
	DefaultStatusAPIPort    = 2525
)

// defaultUpstreamHeaders 재고 페이지를 Next.js RSC 요청으로 조회하기 위한 기본 헤더입니다.
func defaultUpstreamHeaders() map[string]string {
	return map[string]string{
		"accept":                 "*/*",
		"accept-language":        "en-US,en;q=0.9",
		"next-router-state-tree": "%5B%22%22%2C%7B%22children%22%3A%5B%22stocks%22%2C%7B%22children%22%3A%5B%22__PAGE__%22%2C%7B%7D%2C%22%2Fstocks%22%2C%22refresh%22%5D%7D%5D%7D%2Cnull%2C%22refetch%22%5D",
		"priority":               "u=1, i",
		"referer":                "https://growagarden.gg/stocks",
		"rsc":                    "1",
		"sec-fetch-dest":         "empty",
		"sec-fetch-mode":         "cors",
		"sec-fetch-site":         "same-origin",
		"user-agent":             "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36 OPR/119.0.0.0",
	}
}

func defaultConfig() AppConfig {
	return AppConfig{
		Upstream: UpstreamConfig{
			URL:       DefaultUpstreamURL,
			MarkerKey: DefaultMarkerKey,
			Headers:   defaultUpstreamHeaders(),
			Timeout:   DefaultUpstreamTimeout,
		},
		Webhook: WebhookConfig{
			Timeout:   DefaultWebhookTimeout,
			RateLimit: DefaultWebhookRateLimit,
			RateBurst: DefaultWebhookRateBurst,
		},
		Scheduler: SchedulerConfig{
			Interval: DefaultInterval,
		},
		Storage: StorageConfig{
			Dir: DefaultStorageDir,
			Key: DefaultStorageKey,
		},
		Alert: AlertConfig{
			FailureThreshold: DefaultFailureThreshold,
		},
		StatusAPI: StatusAPIConfig{
			ListenPort: DefaultStatusAPIPort,
		},
	}
}
