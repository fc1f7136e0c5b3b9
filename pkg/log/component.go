package log

import "github.com/sirupsen/logrus"

// WithComponent component 필드가 설정된 Entry를 반환합니다.
// 로그가 파이프라인의 어느 단계에서 발생했는지 식별하기 위해 모든 패키지가 이 함수를 사용합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// WithFields logrus.WithFields의 별칭입니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}
