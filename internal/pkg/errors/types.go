package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 종류를 나타냅니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류
	Internal

	// System 파일 입출력 등 인프라 오류
	System

	// InvalidInput 잘못된 입력 또는 설정
	InvalidInput

	// NotFound 대상을 찾을 수 없음
	NotFound

	// ParsingFailed 데이터 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 외부 서비스 호출 실패 또는 일시적 사용 불가
	Unavailable
)
