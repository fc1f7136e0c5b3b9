package log

import "github.com/sirupsen/logrus"

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 프로세스는 계속 동작하지만 운영자의 확인이 필요한 상태입니다.
	// 웹훅 전송 실패, 재고 데이터 파싱 실패 등이 여기에 해당합니다.
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 잠재적인 문제입니다. 웹훅 주소 미설정, 상태 파일 손상 등이 여기에 해당합니다.
	WarnLevel Level = logrus.WarnLevel

	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	Fields    = logrus.Fields
	Entry     = logrus.Entry
	Hook      = logrus.Hook
	Logger    = logrus.Logger
	Formatter = logrus.Formatter
)

// StandardLogger 전역 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// ParseLevel 문자열을 로그 레벨로 변환합니다.
func ParseLevel(lvl string) (Level, error) {
	return logrus.ParseLevel(lvl)
}
