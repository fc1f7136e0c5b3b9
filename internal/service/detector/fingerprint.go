package detector

import (
	"bytes"
	"encoding/json"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
)

// fingerprintDoc 지문 계산에 사용하는 직렬화 형식입니다. 필드 순서가 고정되어 있어 출력이 결정적입니다.
type fingerprintDoc struct {
	RolePings []string       `json:"rolePings"`
	Embed     contract.Embed `json:"embed"`
}

// Fingerprint 역할 호출 목록과 임베드로부터 변경 감지용 지문을 만듭니다.
// 임베드의 Timestamp는 제외되므로, 내용이 같으면 전송 시각이 달라도 지문이 같습니다.
//
// 역할 호출은 "<@&ID>" 형식으로 기록되며 HTML 이스케이프를 하지 않습니다.
// 기존 lastStockMessages.json 파일에 저장된 값과 그대로 비교할 수 있는 형식입니다.
// 단, encoding/json은 U+2028, U+2029를 이스케이프하고 잘못된 UTF-8을 U+FFFD로 바꾸므로,
// 품목 이름에 이런 문자가 있으면 기존 값과 지문이 달라져 한 번 더 전송될 수 있습니다.
func Fingerprint(mentions []string, embed contract.Embed) (string, error) {
	embed.Timestamp = nil

	pings := make([]string, len(mentions))
	for i, id := range mentions {
		pings[i] = "<@&" + id + ">"
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fingerprintDoc{RolePings: pings, Embed: embed}); err != nil {
		return "", apperrors.Wrap(err, apperrors.Internal, "알림 지문 계산 실패")
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// PayloadFingerprint Payload의 지문을 반환합니다.
func PayloadFingerprint(p contract.Payload) (string, error) {
	return Fingerprint(p.Mentions, p.Embed)
}
