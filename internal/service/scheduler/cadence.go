package scheduler

import "github.com/darkkaiser/stock-notifier/internal/service/contract"

// IsDue 벽시계 기준 분(0~59)에 채널이 전송 대상인지 판단합니다.
//
//	main : 5분마다 (0, 5, 10, ...)
//	event: 정각과 30분
//	egg  : 25분마다 (0, 25, 50)
//
// 실행 간격이 시작 시각 기준이므로, 시작 시각에 따라 특정 분을 건너뛰거나 두 번 평가할 수 있습니다.
func IsDue(ch contract.Channel, minute int) bool {
	switch ch {
	case contract.ChannelMain:
		return minute%5 == 0
	case contract.ChannelEvent:
		return minute == 0 || minute == 30
	case contract.ChannelEgg:
		return minute%25 == 0
	}
	return false
}

// DueChannels minute에 전송 대상인 채널을 평가 순서대로 반환합니다.
func DueChannels(minute int) []contract.Channel {
	var due []contract.Channel
	for _, ch := range contract.Channels() {
		if IsDue(ch, minute) {
			due = append(due, ch)
		}
	}
	return due
}
