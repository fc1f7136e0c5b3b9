package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/fetcher"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
	"github.com/darkkaiser/stock-notifier/pkg/strutils"
)

const component = "notification.dispatcher"

// webhookMessage 웹훅으로 전송되는 메시지 본문입니다. content가 nil이면 JSON null로 직렬화됩니다.
type webhookMessage struct {
	Content *string          `json:"content"`
	Embeds  []contract.Embed `json:"embeds"`
}

// WebhookDispatcher contract.Dispatcher 구현체입니다. 재시도는 하지 않으며, 다음 처리 주기가 재시도 역할을 합니다.
type WebhookDispatcher struct {
	url     string
	fetcher fetcher.Fetcher
}

var _ contract.Dispatcher = (*WebhookDispatcher)(nil)

// NewWebhookDispatcher url이 비어 있어도 생성은 성공하며, 이 경우 Send는 ErrWebhookNotConfigured를 반환합니다.
func NewWebhookDispatcher(url string, f fetcher.Fetcher) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:     strings.TrimSpace(url),
		fetcher: f,
	}
}

// Configured 웹훅 주소가 설정되어 있는지 여부를 반환합니다.
func (d *WebhookDispatcher) Configured() bool {
	return d.url != ""
}

func (d *WebhookDispatcher) Send(ctx context.Context, p contract.Payload) error {
	if d.url == "" {
		return ErrWebhookNotConfigured
	}

	body, err := encodeMessage(p)
	if err != nil {
		return NewErrMarshalMessage(err, p.Channel)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fetcher.NewErrInvalidRequest(err, strutils.MaskURLPath(d.url))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.fetcher.Do(req)
	if err != nil {
		return NewErrSendFailed(err, p.Channel)
	}
	defer resp.Body.Close()

	// 연결 재사용을 위해 남은 본문을 비웁니다.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	applog.WithComponentAndFields(component, applog.Fields{
		"channel":     p.Channel,
		"status_code": resp.StatusCode,
		"mentions":    len(p.Mentions),
	}).Info("웹훅 전송 완료")

	return nil
}

func encodeMessage(p contract.Payload) ([]byte, error) {
	msg := webhookMessage{Embeds: []contract.Embed{p.Embed}}
	if content := p.MentionContent(); content != "" {
		msg.Content = &content
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
