package alert

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/darkkaiser/stock-notifier/pkg/strutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	// defaultHTTPClientTimeout 텔레그램 API 요청 타임아웃
	defaultHTTPClientTimeout = 30 * time.Second

	// 텔레그램 API 정책(채팅방당 초당 1회)에 맞춘 전송 속도
	defaultRateLimit = 1
	defaultRateBurst = 3

	// maxMessageLength 텔레그램 메시지 최대 길이(문자 수)
	maxMessageLength = 4096
)

// botClient 텔레그램 봇 API 중 알림 전송에 필요한 부분만 추상화한 인터페이스입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramConfig 텔레그램 알림 설정입니다.
type TelegramConfig struct {
	BotToken string
	ChatID   int64

	// APIEndpoint 봇 API 주소 형식 (비어 있으면 tgbotapi.APIEndpoint)
	APIEndpoint string

	Debug bool
}

// Telegram 텔레그램 채팅방으로 운영자 알림을 보냅니다.
type Telegram struct {
	chatID  int64
	client  botClient
	limiter *rate.Limiter
}

var _ contract.Alerter = (*Telegram)(nil)

// NewTelegram 봇 API 클라이언트를 초기화합니다. 초기화 과정에서 토큰 검증을 위해 API를 한 번 호출합니다.
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutils.Mask(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 API 클라이언트를 초기화합니다")

	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	client := &http.Client{
		Timeout: defaultHTTPClientTimeout,
	}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, endpoint, client)
	if err != nil {
		return nil, NewErrInitClient(err)
	}
	botAPI.Debug = cfg.Debug

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": botAPI.Self.UserName,
		"chat_id":      cfg.ChatID,
	}).Info("텔레그램 운영자 알림이 활성화되었습니다")

	return newTelegramWithClient(cfg.ChatID, botAPI), nil
}

func newTelegramWithClient(chatID int64, client botClient) *Telegram {
	return &Telegram{
		chatID:  chatID,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
	}
}

// Alert 메시지를 전송합니다. 텔레그램 최대 길이를 넘는 메시지는 잘라서 보냅니다.
func (t *Telegram) Alert(ctx context.Context, message string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return NewErrRateLimitWait(err)
	}

	msg := tgbotapi.NewMessage(t.chatID, truncate(message, maxMessageLength))
	if _, err := t.client.Send(msg); err != nil {
		return NewErrSendFailed(err)
	}

	applog.WithComponentAndFields(component, applog.Fields{"chat_id": t.chatID}).Info("운영자 알림을 전송했습니다")
	return nil
}

// truncate 문자 수 기준으로 s를 max 이하로 자릅니다. 잘린 경우 끝에 "..."를 붙입니다.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
