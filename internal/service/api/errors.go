package api

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

// ErrAlreadyRunning Start가 중복 호출되었을 때 반환합니다.
var ErrAlreadyRunning = apperrors.New(apperrors.Internal, "상태 API 서비스가 이미 실행 중입니다")
