// Package config 설정 파일, 환경 변수, 기본값을 합쳐 애플리케이션 설정을 만듭니다.
//
// 우선순위 (뒤로 갈수록 높음):
//
//  1. 기본값
//  2. JSON 설정 파일
//  3. DISCORD_WEBHOOK_URL 환경 변수
//  4. STOCK_NOTIFIER_ 접두사 환경 변수 (예: STOCK_NOTIFIER_WEBHOOK__URL → webhook.url)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "stock-notifier"

	// DefaultFilename 경로를 지정하지 않았을 때 찾는 설정 파일입니다. 없으면 기본값과 환경 변수만 사용합니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 환경 변수 접두사
	EnvPrefix = "STOCK_NOTIFIER_"

	// LegacyWebhookEnv 웹훅 주소를 지정하는 단독 환경 변수
	LegacyWebhookEnv = "DISCORD_WEBHOOK_URL"
)

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다. 기본 설정 파일은 없어도 됩니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, false)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다. 파일이 없으면 에러입니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, true)
}

func load(filename string, fileRequired bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(defaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && !fileRequired:
			// 기본 설정 파일이 없으면 기본값과 환경 변수로만 동작합니다.
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		default:
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
	}

	// 3. 환경 변수 로드
	if err := k.Load(env.Provider(LegacyWebhookEnv, ".", func(s string) string {
		if s == LegacyWebhookEnv {
			return "webhook.url"
		}
		return ""
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: STOCK_NOTIFIER_SCHEDULER__INTERVAL -> scheduler.interval
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 설정 항목이 있으면 오타로 보고 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

func (c *AppConfig) validate() error {
	c.Webhook.URL = strings.TrimSpace(c.Webhook.URL)
	c.Upstream.URL = strings.TrimSpace(c.Upstream.URL)

	return checkStruct(validate, c, "AppConfig")
}

// VerifyRecommendations 동작에는 문제가 없지만 확인이 필요한 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.Webhook.URL == "" {
		warnings = append(warnings, fmt.Sprintf("웹훅 주소(webhook.url 또는 %s)가 설정되지 않았습니다. 재고 알림이 전송되지 않습니다", LegacyWebhookEnv))
	}

	if c.Alert.FailureThreshold > 0 && !c.Alert.Telegram.Enabled() {
		warnings = append(warnings, "운영자 알림 채널(alert.telegram)이 설정되지 않아 조회 실패 알림은 로그로만 기록됩니다")
	}

	if c.StatusAPI.Enabled && c.StatusAPI.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.StatusAPI.ListenPort))
	}

	return warnings
}
