package storage

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

var (
	// ErrLoadRequiresPointer Load의 대상이 nil이 아닌 포인터가 아닐 때 반환합니다.
	ErrLoadRequiresPointer = apperrors.New(apperrors.Internal, "Load 대상은 nil이 아닌 포인터여야 합니다")

	// ErrEmptyName 저장 이름이 비어 있을 때 반환합니다.
	ErrEmptyName = apperrors.New(apperrors.InvalidInput, "저장 이름이 비어 있습니다")

	// ErrPathTraversalDetected 저장 경로가 저장 디렉토리 밖을 가리킬 때 반환합니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.InvalidInput, "저장 경로가 허용된 디렉토리를 벗어납니다")
)

func NewErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrapf(err, apperrors.System, "저장 디렉토리(%s)에 접근할 수 없습니다", dir)
}

func NewErrReadFailed(err error, path string) error {
	return apperrors.Wrapf(err, apperrors.System, "상태 파일(%s) 읽기 실패", path)
}

func NewErrWriteFailed(err error, path string) error {
	return apperrors.Wrapf(err, apperrors.System, "상태 파일(%s) 쓰기 실패", path)
}

// NewErrCorrupted 파일 내용이 올바른 JSON이 아닐 때 반환합니다.
func NewErrCorrupted(err error, path string) error {
	return apperrors.Wrapf(err, apperrors.ParsingFailed, "상태 파일(%s)이 손상되었습니다", path)
}

func NewErrMarshalFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "상태 직렬화 실패")
}
