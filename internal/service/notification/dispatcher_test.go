package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method      string
	contentType string
	body        []byte
}

func newWebhookServer(t *testing.T, status int) (*httptest.Server, func() []capturedRequest) {
	t.Helper()

	var mu sync.Mutex
	var captured []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)

		mu.Lock()
		captured = append(captured, capturedRequest{
			method:      r.Method,
			contentType: r.Header.Get("Content-Type"),
			body:        b,
		})
		mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), captured...)
	}
}

func newTestFetcher() fetcher.Fetcher {
	return fetcher.New(fetcher.Config{Timeout: 5 * time.Second, MaskURLPath: true})
}

func TestWebhookDispatcher_Send(t *testing.T) {
	srv, requests := newWebhookServer(t, http.StatusNoContent)

	r := NewRenderer(NewMentionRules([]MentionRule{{Item: "Shovel", RoleID: "42"}}))
	p, err := r.Render(contract.ChannelMain, scenarioSnapshot(), testNow)
	require.NoError(t, err)

	d := NewWebhookDispatcher(srv.URL, newTestFetcher())
	require.True(t, d.Configured())
	require.NoError(t, d.Send(context.Background(), p))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].method)
	assert.Equal(t, "application/json", reqs[0].contentType)

	var msg struct {
		Content *string `json:"content"`
		Embeds  []struct {
			Title  string `json:"title"`
			Color  int    `json:"color"`
			Fields []struct {
				Name   string `json:"name"`
				Value  string `json:"value"`
				Inline bool   `json:"inline"`
			} `json:"fields"`
			Timestamp *time.Time `json:"timestamp"`
		} `json:"embeds"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].body, &msg))

	require.NotNil(t, msg.Content)
	assert.Equal(t, "<@&42>", *msg.Content)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "🌿 Grow-A-Garden Stock Update", msg.Embeds[0].Title)
	assert.Equal(t, 0x00ff00, msg.Embeds[0].Color)
	require.Len(t, msg.Embeds[0].Fields, 3)
	assert.Equal(t, "Shovel: 3", msg.Embeds[0].Fields[0].Value)
	require.NotNil(t, msg.Embeds[0].Timestamp)
	assert.True(t, testNow.Equal(*msg.Embeds[0].Timestamp))
}

func TestWebhookDispatcher_Send_NullContentWithoutMentions(t *testing.T) {
	srv, requests := newWebhookServer(t, http.StatusOK)

	r := NewRenderer(NewMentionRules(nil))
	p, err := r.Render(contract.ChannelEgg, scenarioSnapshot(), testNow)
	require.NoError(t, err)

	d := NewWebhookDispatcher(srv.URL, newTestFetcher())
	require.NoError(t, d.Send(context.Background(), p))

	reqs := requests()
	require.Len(t, reqs, 1)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(reqs[0].body, &raw))
	assert.Equal(t, "null", string(raw["content"]))
}

func TestWebhookDispatcher_Send_NotConfigured(t *testing.T) {
	d := NewWebhookDispatcher("   ", newTestFetcher())
	assert.False(t, d.Configured())

	err := d.Send(context.Background(), contract.Payload{Channel: contract.ChannelMain})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWebhookNotConfigured)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestWebhookDispatcher_Send_ServerError(t *testing.T) {
	srv, requests := newWebhookServer(t, http.StatusInternalServerError)

	d := NewWebhookDispatcher(srv.URL, newTestFetcher())
	err := d.Send(context.Background(), contract.Payload{Channel: contract.ChannelEvent})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	assert.Len(t, requests(), 1, "전송 실패 시 재시도하지 않아야 합니다")
}

func TestWebhookDispatcher_Send_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := NewWebhookDispatcher(url, newTestFetcher())
	err := d.Send(context.Background(), contract.Payload{Channel: contract.ChannelEgg})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Unavailable))
}

func TestWebhookDispatcher_Send_InvalidURL(t *testing.T) {
	d := NewWebhookDispatcher("http://[::1", newTestFetcher())
	err := d.Send(context.Background(), contract.Payload{Channel: contract.ChannelMain})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
