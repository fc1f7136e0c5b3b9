package scheduler

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

var (
	// ErrAlreadyRunning Start가 중복 호출되었을 때 반환합니다.
	ErrAlreadyRunning = apperrors.New(apperrors.Internal, "스케줄러가 이미 실행 중입니다")
)

func NewErrInvalidInterval(err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, "스케줄러 실행 간격이 올바르지 않습니다")
}

func NewErrRegisterJob(err error, spec string) error {
	return apperrors.Wrapf(err, apperrors.Internal, "스케줄 등록 실패 (TimeSpec: %s)", spec)
}

func NewErrChannelPanic(r any) error {
	return apperrors.Newf(apperrors.Internal, "채널 처리 중 패닉 발생: %v", r)
}
