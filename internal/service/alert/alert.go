// Package alert 운영자에게 장애와 복구를 알리는 Alerter 구현체를 제공합니다.
package alert

import (
	"context"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
)

const component = "alert"

// Noop 알림 채널이 설정되지 않았을 때 사용하는 Alerter입니다. 메시지를 로그로만 남깁니다.
type Noop struct{}

var _ contract.Alerter = Noop{}

func (Noop) Alert(_ context.Context, message string) error {
	applog.WithComponent(component).Debugf("운영자 알림 채널이 설정되지 않아 로그로만 기록합니다: %s", message)
	return nil
}
