package config

import (
	"time"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug bool `json:"debug"`

	Upstream  UpstreamConfig  `json:"upstream"`
	Webhook   WebhookConfig   `json:"webhook"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Storage   StorageConfig   `json:"storage"`

	// RoleMentions 품목별 호출 역할 목록입니다. 품목 이름에 점(.)이 들어갈 수 있어 맵 대신 목록을 사용합니다.
	RoleMentions []RoleMentionConfig `json:"role_mentions" validate:"unique=Item,dive"`

	Alert     AlertConfig     `json:"alert"`
	StatusAPI StatusAPIConfig `json:"status_api"`
}

// UpstreamConfig 재고 페이지 조회 설정
type UpstreamConfig struct {
	URL       string `json:"url" validate:"required,http_url"`
	MarkerKey string `json:"marker_key" validate:"required"`

	// Headers 요청에 설정할 헤더입니다. 설정 파일에 지정하면 기본 헤더 전체를 대체합니다.
	Headers map[string]string `json:"headers"`

	Timeout time.Duration `json:"timeout" validate:"gt=0"`

	// MaxBytes 응답 본문 최대 크기 (-1: 제한 없음)
	MaxBytes int64 `json:"max_bytes" validate:"gte=-1"`

	// UserAgents User-Agent 헤더가 설정되지 않았을 때 무작위로 사용할 목록
	UserAgents []string `json:"user_agents"`
}

// WebhookConfig 알림 웹훅 설정
type WebhookConfig struct {
	// URL 비어 있으면 알림을 전송하지 않고 경고만 기록합니다.
	URL string `json:"url" validate:"omitempty,http_url"`

	Timeout   time.Duration `json:"timeout" validate:"gt=0"`
	RateLimit float64       `json:"rate_limit" validate:"gte=0"`
	RateBurst int           `json:"rate_burst" validate:"gte=0"`
}

type SchedulerConfig struct {
	Interval time.Duration `json:"interval" validate:"gte=1s"`
}

// StorageConfig 채널 상태 저장 설정
type StorageConfig struct {
	Dir string `json:"dir" validate:"required"`

	// Key 상태 이름. kebab-case로 바꾼 "<key>.json" 파일에 저장하며,
	// 그 파일이 없으면 이름을 바꾸지 않은 "<key>.json"(예: lastStockMessages.json)을 읽습니다.
	Key string `json:"key" validate:"required"`
}

// RoleMentionConfig 품목이 입고되었을 때 호출할 역할
type RoleMentionConfig struct {
	Item   string `json:"item" validate:"required"`
	RoleID string `json:"role_id" validate:"required,numeric"`
}

type AlertConfig struct {
	Telegram TelegramConfig `json:"telegram"`

	// FailureThreshold 연속 조회 실패가 이 횟수에 도달하면 알림을 보냅니다 (0: 알림 없음)
	FailureThreshold int `json:"failure_threshold" validate:"gte=0"`
}

// TelegramConfig 텔레그램 봇 토큰 및 채팅 ID 정보를 담는 설정 구조체. BotToken이 비어 있으면 비활성화됩니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token" validate:"omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_with=BotToken"`
}

// Enabled 텔레그램 알림 사용 여부
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != ""
}

// StatusAPIConfig 상태 조회 API 서버 설정
type StatusAPIConfig struct {
	Enabled    bool `json:"enabled"`
	ListenPort int  `json:"listen_port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
}
