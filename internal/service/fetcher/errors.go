package fetcher

import (
	"net/http"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
)

// NewErrInvalidRequest 요청 객체를 만들 수 없을 때(잘못된 URL 등) 반환합니다.
func NewErrInvalidRequest(err error, rawURL string) error {
	return apperrors.Wrapf(err, apperrors.InvalidInput, "HTTP 요청 생성 실패 (URL: %s)", rawURL)
}

// NewErrRequestFailed 네트워크, DNS, TLS 수준에서 요청이 실패했을 때 반환합니다.
func NewErrRequestFailed(err error, req *http.Request) error {
	return apperrors.Wrapf(err, apperrors.Unavailable, "HTTP 요청 실패 (%s %s)", req.Method, redactURL(req.URL))
}

// NewErrUnexpectedStatus 허용되지 않은 상태 코드를 받았을 때 반환합니다.
func NewErrUnexpectedStatus(statusCode int, rawURL, bodySnippet string) error {
	if bodySnippet == "" {
		return apperrors.Newf(apperrors.Unavailable, "비정상 HTTP 응답 (상태 코드: %d, URL: %s)", statusCode, rawURL)
	}
	return apperrors.Newf(apperrors.Unavailable, "비정상 HTTP 응답 (상태 코드: %d, URL: %s, 본문: %s)", statusCode, rawURL, bodySnippet)
}

// NewErrResponseBodyTooLarge 응답 본문이 크기 제한을 넘었을 때 반환합니다.
func NewErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.Unavailable, "응답 본문 크기가 제한(%d bytes)을 초과했습니다", limit)
}

// NewErrRateLimitWait 속도 제한 대기 중 컨텍스트가 끝났을 때 반환합니다.
func NewErrRateLimitWait(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "요청 속도 제한 대기 중 취소되었습니다")
}

func NewErrDecodeBody(err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, "응답 본문의 문자 인코딩 변환 실패")
}

func NewErrReadBody(err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, "응답 본문 읽기 실패")
}
