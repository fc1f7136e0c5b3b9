package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/stock-notifier/internal/config"
	"github.com/darkkaiser/stock-notifier/internal/pkg/version"
	"github.com/darkkaiser/stock-notifier/internal/service"
	"github.com/darkkaiser/stock-notifier/internal/service/alert"
	"github.com/darkkaiser/stock-notifier/internal/service/api"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/detector"
	"github.com/darkkaiser/stock-notifier/internal/service/fetcher"
	"github.com/darkkaiser/stock-notifier/internal/service/notification"
	"github.com/darkkaiser/stock-notifier/internal/service/scheduler"
	"github.com/darkkaiser/stock-notifier/internal/service/stock"
	"github.com/darkkaiser/stock-notifier/internal/service/storage"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
)

const component = "main"

const banner = `
  ____  _             _      _   _       _   _  __ _
 / ___|| |_ ___   ___| | __ | \ | | ___ | |_(_)/ _(_) ___ _ __
 \___ \| __/ _ \ / __| |/ / |  \| |/ _ \| __| | |_| |/ _ \ '__|
  ___) | || (_) | (__|   <  | |\  | (_) | |_| |  _| |  __/ |
 |____/ \__\___/ \___|_|\_\ |_| \_|\___/ \__|_|_| |_|\___|_|
                                                        %s
--------------------------------------------------------------------------------
`

func main() {
	configFile := flag.String("config", "", "설정 파일 경로 (기본값: "+config.DefaultFilename+", 없으면 기본값과 환경 변수만 사용)")
	flag.Parse()

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := loadConfig(*configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("초기화 시작")

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(w)
	}

	services := newServices(appConfig, buildInfo)

	serviceStopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serviceStopWG := &sync.WaitGroup{}

	if err := startServices(serviceStopCtx, serviceStopWG, services); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서비스 초기화 실패로 프로그램을 종료합니다")

		stop()
		serviceStopWG.Wait()
		appLogCloser.Close()
		os.Exit(1)
	}

	applog.WithComponent(component).Info("가동 완료")

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("종료 신호를 수신했습니다")
	serviceStopWG.Wait()
	applog.WithComponent(component).Info("정상 종료")
}

func loadConfig(filename string) (*config.AppConfig, error) {
	if filename == "" {
		return config.Load()
	}
	return config.LoadWithFile(filename)
}

// newServices 설정에 따라 구성 요소를 조립하고 시작할 서비스 목록을 반환합니다.
func newServices(appConfig *config.AppConfig, buildInfo version.Info) []service.Service {
	upstream := fetcher.New(fetcher.Config{
		Timeout:    appConfig.Upstream.Timeout,
		MaxBytes:   appConfig.Upstream.MaxBytes,
		UserAgents: appConfig.Upstream.UserAgents,
	})
	snapshots := stock.NewFetcher(upstream, appConfig.Upstream.URL, appConfig.Upstream.Headers, appConfig.Upstream.MarkerKey)

	// 상태 저장소 오류는 치명적이지 않습니다. 읽기 실패는 빈 상태로, 쓰기 실패는 로그로 처리됩니다.
	det := detector.New(storage.NewFileStore(appConfig.Storage.Dir), appConfig.Storage.Key)
	det.Load()

	rules := make([]notification.MentionRule, 0, len(appConfig.RoleMentions))
	for _, m := range appConfig.RoleMentions {
		rules = append(rules, notification.MentionRule{Item: m.Item, RoleID: m.RoleID})
	}
	renderer := notification.NewRenderer(notification.NewMentionRules(rules))

	// 웹훅 주소에는 토큰이 포함되므로 로그에서는 경로를 가립니다.
	webhook := fetcher.New(fetcher.Config{
		Timeout:     appConfig.Webhook.Timeout,
		RateLimit:   appConfig.Webhook.RateLimit,
		RateBurst:   appConfig.Webhook.RateBurst,
		MaskURLPath: true,
	})
	dispatcher := notification.NewWebhookDispatcher(appConfig.Webhook.URL, webhook)

	sched := scheduler.NewService(snapshots, renderer, dispatcher, det, newAlerter(appConfig), scheduler.Options{
		Interval:         appConfig.Scheduler.Interval,
		FailureThreshold: appConfig.Alert.FailureThreshold,
	})

	services := []service.Service{sched}

	if appConfig.StatusAPI.Enabled {
		handler := api.NewHandler(sched, det, buildInfo)
		services = append(services, api.NewService(api.Config{
			ListenPort: appConfig.StatusAPI.ListenPort,
			Debug:      appConfig.Debug,
		}, handler))
	}

	return services
}

// newAlerter 텔레그램 설정이 없거나 초기화에 실패하면 로그만 남기는 Alerter를 반환합니다.
func newAlerter(appConfig *config.AppConfig) contract.Alerter {
	tg := appConfig.Alert.Telegram
	if !tg.Enabled() {
		return alert.Noop{}
	}

	alerter, err := alert.NewTelegram(alert.TelegramConfig{
		BotToken: tg.BotToken,
		ChatID:   tg.ChatID,
		Debug:    appConfig.Debug,
	})
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("텔레그램 운영자 알림 초기화에 실패하여 로그로만 알림을 기록합니다")
		return alert.Noop{}
	}
	return alerter
}

// startServices 서비스를 순서대로 시작합니다. 하나라도 실패하면 에러를 반환하며,
// 이미 시작된 서비스는 호출자가 serviceStopCtx를 취소하여 종료시켜야 합니다.
func startServices(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, services []service.Service) error {
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			return err
		}
	}
	return nil
}
