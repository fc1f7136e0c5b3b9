package notification

import (
	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
)

// ErrWebhookNotConfigured 웹훅 주소가 설정되지 않았을 때 Send가 반환합니다.
// 처리 주기를 중단시키는 에러가 아니며, 호출자는 경고로 기록하고 상태를 갱신하지 않습니다.
var ErrWebhookNotConfigured = apperrors.New(apperrors.InvalidInput, "웹훅 주소가 설정되지 않았습니다")

func NewErrUnknownChannel(ch contract.Channel) error {
	return apperrors.Newf(apperrors.InvalidInput, "알림을 만들 수 없는 채널입니다: %q", ch.String())
}

func NewErrMarshalMessage(err error, ch contract.Channel) error {
	return apperrors.Wrapf(err, apperrors.Internal, "웹훅 메시지 직렬화 실패 (채널: %s)", ch)
}

func NewErrSendFailed(err error, ch contract.Channel) error {
	return apperrors.Wrapf(err, apperrors.Unavailable, "웹훅 전송 실패 (채널: %s)", ch)
}
