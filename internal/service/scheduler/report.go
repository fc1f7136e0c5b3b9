package scheduler

import (
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
)

// Outcome 채널 하나의 처리 결과입니다.
type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"

	// OutcomeSkipped 웹훅 주소가 없어 전송하지 않았습니다.
	OutcomeSkipped Outcome = "skipped"
)

// ChannelResult 처리 주기에서 채널 하나를 평가한 결과입니다.
type ChannelResult struct {
	Channel contract.Channel `json:"channel"`
	Outcome Outcome          `json:"outcome"`
	Error   string           `json:"error,omitempty"`
}

// TickReport 처리 주기 한 번의 결과입니다. 상태 API로 노출됩니다.
type TickReport struct {
	StartedAt  time.Time       `json:"started_at"`
	Duration   time.Duration   `json:"duration_ns"`
	Minute     int             `json:"minute"`
	FetchError string          `json:"fetch_error,omitempty"`
	Channels   []ChannelResult `json:"channels"`
}

// OK 조회와 모든 채널 처리가 실패 없이 끝났는지 여부를 반환합니다.
func (r TickReport) OK() bool {
	if r.FetchError != "" {
		return false
	}
	for _, c := range r.Channels {
		if c.Outcome == OutcomeFailed {
			return false
		}
	}
	return true
}

// Status 스케줄러의 현재 상태입니다.
type Status struct {
	Running             bool        `json:"running"`
	Interval            string      `json:"interval"`
	TickCount           uint64      `json:"tick_count"`
	ConsecutiveFailures int         `json:"consecutive_fetch_failures"`
	LastTick            *TickReport `json:"last_tick,omitempty"`
}
