package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "Handler는 필수입니다", func() {
		NewService(Config{}, nil)
	})
}

func TestService_StartAndShutdown(t *testing.T) {
	s := NewService(Config{ListenPort: 0}, newTestHandler(scheduler.Status{Running: true}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	require.NoError(t, s.Start(ctx, wg))
	assert.True(t, s.Running())

	var addr net.Addr
	require.Eventually(t, func() bool {
		addr = s.Addr()
		return addr != nil
	}, 2*time.Second, 10*time.Millisecond)

	port := addr.(*net.TCPAddr).Port
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	wg.Wait()

	assert.False(t, s.Running())
}

func TestService_Start_Duplicate(t *testing.T) {
	s := NewService(Config{ListenPort: 0}, newTestHandler(scheduler.Status{}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	wg.Add(1)
	assert.ErrorIs(t, s.Start(ctx, wg), ErrAlreadyRunning)

	cancel()
	wg.Wait()
}

func TestService_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	port := l.Addr().(*net.TCPAddr).Port
	s := NewService(Config{ListenPort: port}, newTestHandler(scheduler.Status{}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	// 바인딩 실패 시 취소 신호 없이도 서비스가 스스로 정리됩니다.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("포트 바인딩 실패 후 서비스가 종료되지 않았습니다")
	}
	assert.False(t, s.Running())
}
