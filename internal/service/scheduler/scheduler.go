// Package scheduler 일정 간격으로 재고를 조회하고, 전송 주기가 된 채널의 알림을 처리합니다.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/detector"
	"github.com/darkkaiser/stock-notifier/internal/service/notification"
	"github.com/darkkaiser/stock-notifier/pkg/cronx"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// DefaultInterval 기본 처리 주기
const DefaultInterval = time.Minute

// Options Scheduler 동작 설정입니다.
type Options struct {
	// Interval 처리 주기 (0: DefaultInterval)
	Interval time.Duration

	// FailureThreshold 연속 조회 실패가 이 횟수에 도달하면 운영자 알림을 보냅니다 (0: 알림 없음)
	FailureThreshold int
}

// Service 조회 → 변경 감지 → 전송 → 상태 갱신 흐름을 주기적으로 실행합니다.
//
// 처리 주기는 겹치지 않습니다. 즉시 실행되는 첫 주기와 cron이 실행하는 주기는 같은 Job을 공유하며,
// cron.SkipIfStillRunning이 이전 주기가 끝나지 않았으면 다음 주기를 건너뜁니다.
type Service struct {
	fetcher    contract.SnapshotFetcher
	renderer   contract.Renderer
	dispatcher contract.Dispatcher
	detector   contract.ChangeDetector
	alerter    contract.Alerter

	interval         time.Duration
	failureThreshold int

	now func() time.Time

	cron *cron.Cron

	// runCtx 처리 주기에 전달되는 컨텍스트입니다. 스케줄러가 소유하며 모든 주기가 끝난 뒤 취소됩니다.
	runCtx    context.Context
	runCancel context.CancelFunc

	// tickWG 시작 직후 실행되는 첫 주기의 종료를 기다리기 위한 WaitGroup
	tickWG sync.WaitGroup

	running   bool
	runningMu sync.Mutex

	statusMu            sync.RWMutex
	lastTick            *TickReport
	tickCount           uint64
	consecutiveFailures int
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다. alerter는 nil일 수 있습니다.
func NewService(f contract.SnapshotFetcher, r contract.Renderer, d contract.Dispatcher, cd contract.ChangeDetector, alerter contract.Alerter, opts Options) *Service {
	if f == nil {
		panic("SnapshotFetcher는 필수입니다")
	}
	if r == nil {
		panic("Renderer는 필수입니다")
	}
	if d == nil {
		panic("Dispatcher는 필수입니다")
	}
	if cd == nil {
		panic("ChangeDetector는 필수입니다")
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Service{
		fetcher:    f,
		renderer:   r,
		dispatcher: d,
		detector:   cd,
		alerter:    alerter,

		interval:         interval,
		failureThreshold: opts.FailureThreshold,

		now: time.Now,
	}
}

// Start 첫 처리 주기를 즉시 실행하고, 이후 Interval 간격으로 처리 주기를 실행합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup (호출자가 Add(1) 한 상태여야 합니다)
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return ErrAlreadyRunning
	}

	spec, err := cronx.Every(s.interval)
	if err != nil {
		serviceStopWG.Done()
		return NewErrInvalidInterval(err)
	}

	cronLogger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cronLogger),
	)

	// 즉시 실행과 cron 실행이 같은 래퍼를 공유해야 중복 실행이 막힙니다.
	job := cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(s.runTick))

	if _, err := s.cron.AddJob(spec, job); err != nil {
		s.cron = nil
		serviceStopWG.Done()
		return NewErrRegisterJob(err, spec)
	}

	s.runCtx, s.runCancel = context.WithCancel(context.Background())

	s.cron.Start()
	s.running = true

	s.tickWG.Add(1)
	go func() {
		defer s.tickWG.Done()
		job.Run()
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"interval": s.interval.String(),
		"spec":     spec,
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 처리 주기가 끝날 때까지 기다린 뒤 스케줄러를 중지합니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.tickWG.Wait()

	if s.runCancel != nil {
		s.runCancel()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

func (s *Service) runTick() {
	s.Tick(s.runCtx)
}

// Tick 처리 주기를 한 번 실행하고 결과를 반환합니다.
//
// 조회는 한 번만 하며 모든 채널이 같은 스냅샷을 사용합니다. 조회에 실패하면 이번 주기만 중단됩니다.
// 채널끼리는 서로 독립적이어서, 한 채널의 실패(패닉 포함)가 다른 채널의 처리를 막지 않습니다.
func (s *Service) Tick(ctx context.Context) (report TickReport) {
	now := s.now()
	report = TickReport{
		StartedAt: now,
		Minute:    now.Minute(),
		Channels:  []ChannelResult{},
	}
	defer func() {
		report.Duration = s.now().Sub(now)
		s.storeReport(report)
	}()

	snap, err := s.fetcher.Fetch(ctx)
	if err != nil {
		report.FetchError = err.Error()

		applog.WithComponentAndFields(component, applog.Fields{"minute": report.Minute}).
			WithError(err).
			Error("재고 조회 실패: 이번 처리 주기를 건너뜁니다")

		s.recordFetchFailure(ctx, err)
		return report
	}
	s.recordFetchSuccess(ctx)

	due := DueChannels(report.Minute)
	if len(due) == 0 {
		applog.WithComponentAndFields(component, applog.Fields{"minute": report.Minute}).
			Debug("전송 주기에 해당하는 채널이 없습니다")
		return report
	}

	for _, ch := range due {
		report.Channels = append(report.Channels, s.processChannel(ctx, ch, *snap, now))
	}
	return report
}

// processChannel 채널 하나의 렌더링 → 변경 감지 → 전송 → 상태 갱신을 수행합니다.
func (s *Service) processChannel(ctx context.Context, ch contract.Channel, snap contract.Snapshot, now time.Time) (result ChannelResult) {
	result.Channel = ch

	fields := applog.Fields{"channel": ch}

	defer func() {
		if r := recover(); r != nil {
			err := NewErrChannelPanic(r)
			result.Outcome = OutcomeFailed
			result.Error = err.Error()

			applog.WithComponentAndFields(component, fields).
				WithError(err).
				Error("채널 처리 중 패닉이 발생했습니다 (다른 채널은 계속 처리됩니다)")
		}
	}()

	fail := func(err error, msg string) ChannelResult {
		result.Outcome = OutcomeFailed
		result.Error = err.Error()
		applog.WithComponentAndFields(component, fields).WithError(err).Error(msg)
		return result
	}

	p, err := s.renderer.Render(ch, snap, now)
	if err != nil {
		return fail(err, "알림 메시지 생성 실패")
	}

	fp, err := detector.PayloadFingerprint(p)
	if err != nil {
		return fail(err, "알림 지문 계산 실패")
	}

	if !s.detector.HasChanged(ch, fp) {
		result.Outcome = OutcomeUnchanged
		applog.WithComponentAndFields(component, fields).Info("변경 사항이 없어 전송을 건너뜁니다")
		return result
	}

	if err := s.dispatcher.Send(ctx, p); err != nil {
		if errors.Is(err, notification.ErrWebhookNotConfigured) {
			result.Outcome = OutcomeSkipped
			result.Error = err.Error()
			applog.WithComponentAndFields(component, fields).Warn("웹훅 주소가 설정되지 않아 알림을 전송하지 않았습니다")
			return result
		}
		return fail(err, "알림 전송 실패: 다음 처리 주기에 다시 시도합니다")
	}

	s.detector.Commit(ch, fp)

	result.Outcome = OutcomeSent
	applog.WithComponentAndFields(component, fields).Info("알림을 전송했습니다")
	return result
}

func (s *Service) recordFetchFailure(ctx context.Context, err error) {
	s.statusMu.Lock()
	s.consecutiveFailures++
	failures := s.consecutiveFailures
	s.statusMu.Unlock()

	if s.failureThreshold <= 0 || failures != s.failureThreshold {
		return
	}

	s.alert(ctx, fmt.Sprintf("⚠️ 재고 조회가 %d회 연속 실패했습니다.\n\n%s", failures, err.Error()))
}

func (s *Service) recordFetchSuccess(ctx context.Context) {
	s.statusMu.Lock()
	failures := s.consecutiveFailures
	s.consecutiveFailures = 0
	s.statusMu.Unlock()

	if s.failureThreshold <= 0 || failures < s.failureThreshold {
		return
	}

	s.alert(ctx, fmt.Sprintf("✅ 재고 조회가 복구되었습니다. (연속 실패 %d회)", failures))
}

func (s *Service) alert(ctx context.Context, message string) {
	if s.alerter == nil {
		return
	}
	if err := s.alerter.Alert(ctx, message); err != nil {
		applog.WithComponent(component).WithError(err).Warn("운영자 알림 전송 실패")
	}
}

func (s *Service) storeReport(r TickReport) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	s.lastTick = &r
	s.tickCount++
}

// LastTick 마지막 처리 주기의 결과를 반환합니다. 아직 실행된 주기가 없으면 false를 반환합니다.
func (s *Service) LastTick() (TickReport, bool) {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	if s.lastTick == nil {
		return TickReport{}, false
	}
	return *s.lastTick, true
}

// Status 상태 API에 노출할 스케줄러 상태를 반환합니다.
func (s *Service) Status() Status {
	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	s.statusMu.RLock()
	defer s.statusMu.RUnlock()

	st := Status{
		Running:             running,
		Interval:            s.interval.String(),
		TickCount:           s.tickCount,
		ConsecutiveFailures: s.consecutiveFailures,
	}
	if s.lastTick != nil {
		r := *s.lastTick
		st.LastTick = &r
	}
	return st
}
