package log

// silentFormatter 아무것도 출력하지 않는 포맷터입니다.
// 실제 포맷팅은 hook에서 한 번만 수행하므로, logrus 기본 출력 경로의 포맷팅 비용을 없앱니다.
type silentFormatter struct{}

func (silentFormatter) Format(*Entry) ([]byte, error) {
	return nil, nil
}
