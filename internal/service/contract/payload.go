package contract

import (
	"strings"
	"time"
)

// Payload 채널 하나에 전송할 알림 내용입니다.
type Payload struct {
	Channel Channel

	// Mentions 호출할 역할(Role) ID 목록입니다. 중복이 없고 정렬되어 있습니다.
	Mentions []string

	Embed Embed
}

// Embed 웹훅 메시지의 임베드 블록입니다.
// Timestamp는 전송 시각이며 변경 감지 지문 계산에서 제외됩니다.
type Embed struct {
	Title     string     `json:"title"`
	Color     int        `json:"color"`
	Fields    []Field    `json:"fields"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Field 임베드의 섹션 하나입니다.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// MentionContent 역할 호출 문자열을 공백으로 이어 반환합니다. 호출 대상이 없으면 빈 문자열입니다.
//
//	[]string{"111", "222"} → "<@&111> <@&222>"
func (p Payload) MentionContent() string {
	if len(p.Mentions) == 0 {
		return ""
	}
	parts := make([]string, len(p.Mentions))
	for i, id := range p.Mentions {
		parts[i] = "<@&" + id + ">"
	}
	return strings.Join(parts, " ")
}
