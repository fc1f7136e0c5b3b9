package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/pkg/version"
	"github.com/darkkaiser/stock-notifier/internal/service/detector"
	"github.com/darkkaiser/stock-notifier/internal/service/scheduler"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	healthStatusHealthy  = "healthy"
	healthStatusDegraded = "degraded"
)

// HealthResponse GET /health 응답입니다.
type HealthResponse struct {
	Status        string           `json:"status"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Scheduler     scheduler.Status `json:"scheduler"`
}

// VersionResponse GET /version 응답입니다.
type VersionResponse struct {
	version.Info
}

// ChannelsResponse GET /api/v1/channels 응답입니다.
type ChannelsResponse struct {
	Channels  []detector.ChannelStatus `json:"channels"`
	CheckedAt time.Time                `json:"checked_at"`
}

// ErrorResponse 모든 에러 응답의 공통 형식입니다.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler 모든 HTTP 에러를 ErrorResponse 형식으로 반환합니다.
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "내부 서버 오류가 발생했습니다."

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code == http.StatusNotFound && message == "Not Found" {
		message = "페이지를 찾을 수 없습니다."
	}

	if code == http.StatusInternalServerError {
		applog.WithComponentAndFields(component, applog.Fields{
			"path":   c.Request().URL.Path,
			"method": c.Request().Method,
			"error":  err,
		}).Error("내부 서버 오류 발생")
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, ErrorResponse{Message: message})
}
