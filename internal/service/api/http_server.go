package api

import (
	"net/http"
	"time"

	appmiddleware "github.com/darkkaiser/stock-notifier/internal/service/api/middleware"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	defaultReadTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultWriteTimeout      = 10 * time.Second
	defaultIdleTimeout       = 60 * time.Second
)

// HTTPServerConfig HTTP 서버 생성 설정입니다.
type HTTPServerConfig struct {
	Debug bool
}

// NewHTTPServer 미들웨어가 설정된 Echo 인스턴스를 생성합니다. 라우트는 포함하지 않습니다.
//
// 미들웨어 순서:
//
//  1. PanicRecovery - 다른 미들웨어의 패닉까지 복구하도록 가장 먼저 적용
//  2. RequestID     - 로그에 request_id가 포함되도록 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger
//  5. Secure        - 보안 헤더
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = defaultReadTimeout
	e.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	e.Server.WriteTimeout = defaultWriteTimeout
	e.Server.IdleTimeout = defaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}
	e.HTTPErrorHandler = ErrorHandler

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(middleware.Secure())

	// 읽기 전용 API입니다.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead:
				return next(c)
			}
			return echo.NewHTTPError(http.StatusMethodNotAllowed, "읽기 전용 API입니다.")
		}
	})

	return e
}
