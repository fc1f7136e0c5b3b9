package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/pkg/version"
	"github.com/darkkaiser/stock-notifier/internal/service/detector"
	"github.com/darkkaiser/stock-notifier/internal/service/scheduler"
	"github.com/labstack/echo/v4"
)

// SchedulerStatusProvider 스케줄러 상태를 제공합니다.
type SchedulerStatusProvider interface {
	Status() scheduler.Status
}

// ChannelStateProvider 채널별 변경 감지 상태를 제공합니다.
type ChannelStateProvider interface {
	States() []detector.ChannelStatus
}

// Handler 상태 조회 엔드포인트를 처리합니다. 모든 엔드포인트는 읽기 전용입니다.
type Handler struct {
	scheduler SchedulerStatusProvider
	channels  ChannelStateProvider
	buildInfo version.Info

	startedAt time.Time
	now       func() time.Time
}

func NewHandler(s SchedulerStatusProvider, c ChannelStateProvider, buildInfo version.Info) *Handler {
	if s == nil {
		panic("SchedulerStatusProvider는 필수입니다")
	}
	if c == nil {
		panic("ChannelStateProvider는 필수입니다")
	}

	return &Handler{
		scheduler: s,
		channels:  c,
		buildInfo: buildInfo,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// HealthHandler 서비스 상태를 반환합니다.
// 재고 조회가 연속으로 실패하고 있으면 degraded를 반환하지만, 상태 코드는 항상 200입니다.
func (h *Handler) HealthHandler(c echo.Context) error {
	st := h.scheduler.Status()

	status := healthStatusHealthy
	if !st.Running || st.ConsecutiveFailures > 0 {
		status = healthStatusDegraded
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:        status,
		UptimeSeconds: int64(h.now().Sub(h.startedAt).Seconds()),
		Scheduler:     st,
	})
}

// VersionHandler 빌드 정보를 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{Info: h.buildInfo})
}

// ChannelsHandler 채널별 마지막 전송 상태를 반환합니다. 지문 값 자체는 노출하지 않습니다.
func (h *Handler) ChannelsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, ChannelsResponse{
		Channels:  h.channels.States(),
		CheckedAt: h.now(),
	})
}
