package contract

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

// Channel 알림이 전송되는 논리적 채널입니다. 채널마다 전송 주기, 메시지 형식, 변경 감지 상태가 독립적입니다.
type Channel string

const (
	// ChannelMain 일반 상점(장비, 씨앗, 코스메틱) 재고
	ChannelMain Channel = "main"

	// ChannelEvent 이벤트 상점(꿀) 재고
	ChannelEvent Channel = "event"

	// ChannelEgg 알 상점 재고
	ChannelEgg Channel = "egg"
)

// Channels 평가 순서대로 정렬된 전체 채널 목록을 반환합니다.
func Channels() []Channel {
	return []Channel{ChannelMain, ChannelEvent, ChannelEgg}
}

func (c Channel) Validate() error {
	switch c {
	case ChannelMain, ChannelEvent, ChannelEgg:
		return nil
	default:
		return apperrors.Newf(apperrors.InvalidInput, "알 수 없는 채널입니다: %q", string(c))
	}
}

func (c Channel) String() string {
	return string(c)
}
