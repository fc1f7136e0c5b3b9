// Package mocks contract 인터페이스의 testify Mock 구현체를 제공합니다.
package mocks

import (
	"context"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotFetcher contract.SnapshotFetcher의 Mock 구현체입니다.
type MockSnapshotFetcher struct {
	mock.Mock
}

func (m *MockSnapshotFetcher) Fetch(ctx context.Context) (*contract.Snapshot, error) {
	args := m.Called(ctx)
	snap, _ := args.Get(0).(*contract.Snapshot)
	return snap, args.Error(1)
}

// MockRenderer contract.Renderer의 Mock 구현체입니다.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ch contract.Channel, snap contract.Snapshot, now time.Time) (contract.Payload, error) {
	args := m.Called(ch, snap, now)
	return args.Get(0).(contract.Payload), args.Error(1)
}

// MockDispatcher contract.Dispatcher의 Mock 구현체입니다.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, p contract.Payload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockAlerter contract.Alerter의 Mock 구현체입니다.
type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) Alert(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockStateStore contract.StateStore의 Mock 구현체입니다.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Save(name string, v any) error {
	args := m.Called(name, v)
	return args.Error(0)
}

func (m *MockStateStore) Load(name string, v any) error {
	args := m.Called(name, v)
	return args.Error(0)
}
