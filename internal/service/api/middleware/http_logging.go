package middleware

import (
	"strconv"
	"time"

	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청과 응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
// 핸들러 에러는 여기서 Echo 에러 핸들러로 넘기므로, 기록되는 상태 코드는 실제 응답 코드입니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				applog.WithComponentAndFields("api.http", applog.Fields{
					"method":        req.Method,
					"path":          path,
					"remote_ip":     c.RealIP(),
					"user_agent":    req.UserAgent(),
					"status":        res.Status,
					"bytes_out":     strconv.FormatInt(res.Size, 10),
					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),
					"request_id":    res.Header().Get(echo.HeaderXRequestID),
				}).Info("HTTP 요청")
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}
