package alert

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

func NewErrInitClient(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요.")
}

func NewErrRateLimitWait(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 전송 속도 제한 대기 중 취소되었습니다")
}

func NewErrSendFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "텔레그램 메시지 전송 실패")
}
