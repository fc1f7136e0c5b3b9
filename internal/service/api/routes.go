package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes 상태 API 라우트를 등록합니다.
//
//	GET /health           서비스 상태 (인증 불필요)
//	GET /version          빌드 정보
//	GET /api/v1/channels  채널별 전송 상태
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.HealthHandler)
	e.GET("/version", h.VersionHandler)

	v1 := e.Group("/api/v1")
	v1.GET("/channels", h.ChannelsHandler)
}
