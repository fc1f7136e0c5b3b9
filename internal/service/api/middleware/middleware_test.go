package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Level(t *testing.T) {
	logger := logrus.New()
	adapter := Logger{Logger: logger}

	tests := []struct {
		set      log.Lvl
		expected applog.Level
	}{
		{log.DEBUG, applog.DebugLevel},
		{log.INFO, applog.InfoLevel},
		{log.WARN, applog.WarnLevel},
		{log.ERROR, applog.ErrorLevel},
	}

	for _, tt := range tests {
		adapter.SetLevel(tt.set)
		assert.Equal(t, tt.expected, logger.Level)
		assert.Equal(t, tt.set, adapter.Level())
	}

	// OFF는 무시됩니다.
	adapter.SetLevel(log.OFF)
	assert.Equal(t, applog.ErrorLevel, logger.Level)

	logger.SetLevel(applog.PanicLevel)
	assert.Equal(t, log.OFF, adapter.Level())
}

func TestLogger_Output(t *testing.T) {
	logger := logrus.New()
	adapter := Logger{Logger: logger}

	var buf bytes.Buffer
	adapter.SetOutput(&buf)
	assert.Equal(t, &buf, adapter.Output())

	adapter.Infoj(log.JSON{"key": "value"})
	assert.Contains(t, buf.String(), "key=value")

	adapter.Warnf("hello %s", "echo")
	assert.Contains(t, buf.String(), "hello echo")
	assert.Equal(t, "", adapter.Prefix())
}

func TestPanicRecovery(t *testing.T) {
	e := echo.New()
	e.Use(PanicRecovery())
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	e.GET("/panic-error", func(c echo.Context) error {
		panic(errors.New("boom error"))
	})

	for _, path := range []string{"/panic", "/panic-error"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NotPanics(t, func() {
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			})
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

func TestHTTPLogger(t *testing.T) {
	var buf bytes.Buffer
	std := applog.StandardLogger()
	prevOut := std.Out
	std.SetOutput(&buf)
	t.Cleanup(func() { std.SetOutput(prevOut) })

	e := echo.New()
	e.Use(HTTPLogger())
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "no")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "path=/ok")
	assert.Contains(t, buf.String(), "status=200")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "status=418")
}
