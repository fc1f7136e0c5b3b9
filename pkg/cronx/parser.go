// Package cronx robfig/cron 파서와 스케줄 표현식 헬퍼를 제공합니다.
package cronx

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 필드를 포함한 6필드 형식과 Descriptor(@every, @daily 등)를 지원하는 파서를 반환합니다.
//
//	"0 */5 * * * *" : 매 5분 0초
//	"@every 1m"     : 시작 시점부터 1분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Every 고정 간격 실행을 위한 "@every" 표현식을 만듭니다.
// 간격은 1초 이상이어야 합니다. cron은 1초 미만 간격을 1초로 올려 실행하기 때문입니다.
func Every(interval time.Duration) (string, error) {
	if interval < time.Second {
		return "", fmt.Errorf("실행 간격은 1초 이상이어야 합니다: %s", interval)
	}
	return "@every " + interval.String(), nil
}

// Validate 표현식이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("잘못된 스케줄 표현식(%q): %w", spec, err)
	}
	return nil
}
