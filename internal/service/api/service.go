// Package api 읽기 전용 상태 조회 API 서버를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/labstack/echo/v4"
)

const component = "api.service"

// shutdownTimeout Graceful Shutdown 최대 대기 시간
const shutdownTimeout = 5 * time.Second

// Config 상태 API 서비스 설정입니다.
type Config struct {
	// ListenPort 수신 포트 (0: 임의 포트)
	ListenPort int

	Debug bool
}

// Service 상태 API 서버의 생명주기를 관리합니다.
// Start로 시작하고 serviceStopCtx 취소로 종료됩니다.
type Service struct {
	cfg     Config
	handler *Handler

	echo *echo.Echo

	running   bool
	runningMu sync.Mutex
}

func NewService(cfg Config, handler *Handler) *Service {
	if handler == nil {
		panic("Handler는 필수입니다")
	}

	return &Service{
		cfg:     cfg,
		handler: handler,
	}
}

// Start 서버를 별도 고루틴에서 시작하고 즉시 반환합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup (호출자가 Add(1) 한 상태여야 합니다)
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: 상태 API 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("상태 API 서비스가 이미 실행 중입니다 (중복 호출)")
		return ErrAlreadyRunning
	}

	e := NewHTTPServer(HTTPServerConfig{Debug: s.cfg.Debug})
	RegisterRoutes(e, s.handler)

	s.echo = e
	s.running = true

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	go func() {
		defer serviceStopWG.Done()
		s.waitForShutdown(serviceStopCtx, e, httpServerDone)
	}()

	applog.WithComponentAndFields(component, applog.Fields{"port": s.cfg.ListenPort}).
		Info("서비스 시작 완료: 상태 API 서비스가 정상적으로 초기화되었습니다")

	return nil
}

// Addr 서버가 수신 중인 주소를 반환합니다. 아직 수신을 시작하지 않았으면 nil입니다.
func (s *Service) Addr() net.Addr {
	s.runningMu.Lock()
	e := s.echo
	s.runningMu.Unlock()

	if e == nil {
		return nil
	}
	return e.ListenerAddr()
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	err := e.Start(fmt.Sprintf(":%d", s.cfg.ListenPort))

	switch {
	case err == nil:
	case errors.Is(err, http.ErrServerClosed):
		applog.WithComponent(component).Info("HTTP 서버가 종료되었습니다")
	default:
		applog.WithComponentAndFields(component, applog.Fields{"port": s.cfg.ListenPort}).
			WithError(err).
			Error("HTTP 서버를 시작할 수 없거나 예기치 않게 종료되었습니다")
	}
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(component).Info("종료 절차 진입: 상태 API 서비스 중지 시그널을 수신했습니다")

	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 이미 종료된 경우입니다.
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponent(component).WithError(err).Error("HTTP 서버 종료 중 오류가 발생했습니다")
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("상태 API 서비스 종료 완료")
}

// Running 서비스 실행 여부를 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}
