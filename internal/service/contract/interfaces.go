package contract

import (
	"context"
	"time"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

// SnapshotFetcher 상위 페이지에서 현재 재고 스냅샷을 가져옵니다.
//
// 반환되는 에러의 타입:
//   - apperrors.Unavailable: 네트워크 오류 또는 비정상 응답
//   - apperrors.NotFound: 응답에서 재고 데이터 블록을 찾지 못함
//   - apperrors.ParsingFailed: 추출한 블록이 올바른 JSON이 아님
type SnapshotFetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Renderer 스냅샷을 채널별 알림 내용으로 변환합니다.
type Renderer interface {
	Render(ch Channel, snap Snapshot, now time.Time) (Payload, error)
}

// Dispatcher 알림 내용을 외부 메시징 서비스로 전송합니다.
// 전송이 확인된 경우에만 nil을 반환합니다.
type Dispatcher interface {
	Send(ctx context.Context, p Payload) error
}

// ChangeDetector 채널별로 마지막 전송 내용의 지문을 관리합니다.
type ChangeDetector interface {
	HasChanged(ch Channel, fingerprint string) bool
	Commit(ch Channel, fingerprint string)
}

// Alerter 운영자에게 장애 및 복구 알림을 보냅니다.
type Alerter interface {
	Alert(ctx context.Context, message string) error
}

// ErrStateNotFound 저장된 상태가 없을 때 StateStore.Load가 반환하는 에러입니다.
var ErrStateNotFound = apperrors.New(apperrors.NotFound, "저장된 상태가 없습니다")

// StateStore 이름 단위로 JSON 직렬화 가능한 값을 영속화합니다.
type StateStore interface {
	// Save 값을 저장합니다. 같은 이름으로 다시 저장하면 덮어씁니다.
	Save(name string, v any) error

	// Load 저장된 값을 v에 읽어옵니다. 저장된 값이 없으면 ErrStateNotFound를 반환합니다.
	Load(name string, v any) error
}
