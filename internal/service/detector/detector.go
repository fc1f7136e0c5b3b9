// Package detector 채널별로 마지막으로 전송한 알림의 지문을 관리하여 중복 전송을 막습니다.
package detector

import (
	"errors"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
)

const component = "detector"

// DefaultStateName 상태 저장소에 채널 상태를 저장할 때 사용하는 이름
const DefaultStateName = "lastStockMessages"

// ChannelStates 영속화되는 채널별 지문입니다. 비어 있는 값은 "아직 전송한 적 없음"을 뜻합니다.
type ChannelStates struct {
	Main  string `json:"main"`
	Event string `json:"event"`
	Egg   string `json:"egg"`
}

func (s *ChannelStates) get(ch contract.Channel) string {
	switch ch {
	case contract.ChannelMain:
		return s.Main
	case contract.ChannelEvent:
		return s.Event
	case contract.ChannelEgg:
		return s.Egg
	}
	return ""
}

func (s *ChannelStates) set(ch contract.Channel, fp string) {
	switch ch {
	case contract.ChannelMain:
		s.Main = fp
	case contract.ChannelEvent:
		s.Event = fp
	case contract.ChannelEgg:
		s.Egg = fp
	}
}

// ChannelStatus 상태 API에 노출하는 채널별 정보입니다.
type ChannelStatus struct {
	Channel        contract.Channel `json:"channel"`
	HasFingerprint bool             `json:"has_fingerprint"`
	CommittedAt    *time.Time       `json:"committed_at,omitempty"`
}

// Detector 채널 상태의 유일한 소유자입니다.
// 상태는 전송이 성공했을 때 Commit으로만 갱신됩니다. 상태 API가 다른 고루틴에서 읽으므로 뮤텍스로 보호합니다.
type Detector struct {
	mu          sync.RWMutex
	states      ChannelStates
	committedAt map[contract.Channel]time.Time

	store     contract.StateStore
	stateName string
	now       func() time.Time
}

var _ contract.ChangeDetector = (*Detector)(nil)

// New 빈 상태의 Detector를 생성합니다. 저장된 상태는 Load로 불러옵니다.
// stateName이 비어 있으면 DefaultStateName을 사용합니다.
func New(store contract.StateStore, stateName string) *Detector {
	if stateName == "" {
		stateName = DefaultStateName
	}
	return &Detector{
		committedAt: make(map[contract.Channel]time.Time),
		store:       store,
		stateName:   stateName,
		now:         time.Now,
	}
}

// Load 저장소에서 채널 상태를 읽습니다. 저장된 상태가 없거나 손상된 경우 빈 상태로 시작하며 에러를 반환하지 않습니다.
func (d *Detector) Load() {
	var loaded ChannelStates
	err := d.store.Load(d.stateName, &loaded)

	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case err == nil:
		d.states = loaded
		applog.WithComponentAndFields(component, applog.Fields{
			"main":  loaded.Main != "",
			"event": loaded.Event != "",
			"egg":   loaded.Egg != "",
		}).Info("저장된 채널 상태를 불러왔습니다")

	case errors.Is(err, contract.ErrStateNotFound):
		d.states = ChannelStates{}
		applog.WithComponent(component).Info("저장된 채널 상태가 없어 빈 상태로 시작합니다")

	default:
		d.states = ChannelStates{}
		applog.WithComponent(component).
			WithError(err).
			Warn("채널 상태를 읽을 수 없어 빈 상태로 시작합니다 (다음 전송 주기에 알림이 중복될 수 있음)")
	}
}

// HasChanged 저장된 지문이 없거나 fp와 다르면 true를 반환합니다.
func (d *Detector) HasChanged(ch contract.Channel, fp string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stored := d.states.get(ch)
	return stored == "" || stored != fp
}

// Commit 전송에 성공한 알림의 지문을 기록하고 즉시 저장소에 반영합니다.
// 저장 실패는 기록만 하고 무시합니다. 메모리 상태는 이미 갱신되었으므로 이번 프로세스 안에서는 중복 전송이 없습니다.
func (d *Detector) Commit(ch contract.Channel, fp string) {
	if err := ch.Validate(); err != nil {
		applog.WithComponent(component).WithError(err).Error("알 수 없는 채널의 상태 갱신 요청을 무시합니다")
		return
	}

	d.mu.Lock()
	d.states.set(ch, fp)
	d.committedAt[ch] = d.now()
	snapshot := d.states
	d.mu.Unlock()

	if err := d.store.Save(d.stateName, snapshot); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"channel": ch}).
			WithError(apperrors.Wrap(err, apperrors.System, "채널 상태 저장 실패")).
			Error("채널 상태를 저장하지 못했습니다 (재시작 후 알림이 중복될 수 있음)")
	}
}

// States 채널별 상태를 평가 순서대로 반환합니다.
func (d *Detector) States() []ChannelStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]ChannelStatus, 0, 3)
	for _, ch := range contract.Channels() {
		st := ChannelStatus{
			Channel:        ch,
			HasFingerprint: d.states.get(ch) != "",
		}
		if t, ok := d.committedAt[ch]; ok {
			t := t
			st.CommittedAt = &t
		}
		out = append(out, st)
	}
	return out
}
