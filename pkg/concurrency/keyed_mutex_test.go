package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SameKeyIsExclusive(t *testing.T) {
	km := NewKeyedMutex()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("state")
			defer km.Unlock("state")

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, km.Len(), "모든 락이 해제되면 키가 정리되어야 합니다")
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()
	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 키의 락 획득이 차단되었습니다")
	}
	assert.Equal(t, 1, km.Len())
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("missing") })
}

func TestWithLock(t *testing.T) {
	km := NewKeyedMutex()

	v, err := WithLock(km, "k", func() (int, error) {
		assert.Equal(t, 1, km.Len())
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	wantErr := errors.New("fail")
	_, err = WithLock(km, "k", func() (struct{}, error) { return struct{}{}, wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, km.Len())
}
