package stock

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

// NewErrFetchFailed 페이지 요청 또는 본문 읽기에 실패했을 때 반환합니다.
// 원인 에러의 타입과 무관하게 전송 계층 에러(Unavailable)로 분류합니다.
func NewErrFetchFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "재고 페이지 요청 실패")
}

// NewErrMarkerNotFound 본문에 재고 데이터 키가 없을 때 반환합니다.
func NewErrMarkerNotFound(key string) error {
	return apperrors.Newf(apperrors.NotFound, "응답 본문에서 재고 데이터(%q)를 찾을 수 없습니다", key)
}

// NewErrUnbalancedObject 재고 객체의 중괄호가 닫히지 않은 채 본문이 끝났을 때 반환합니다.
func NewErrUnbalancedObject(key string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "재고 데이터(%q) 객체가 닫히지 않았습니다", key)
}

// NewErrInvalidJSON 잘라낸 재고 객체가 올바른 JSON이 아닐 때 반환합니다.
func NewErrInvalidJSON(key string, size int) error {
	return apperrors.Newf(apperrors.ParsingFailed, "재고 데이터(%q)가 올바른 JSON이 아닙니다 (%d bytes)", key, size)
}
