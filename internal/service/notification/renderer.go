// Package notification 재고 스냅샷을 채널별 웹훅 메시지로 만들고 전송합니다.
package notification

import (
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
)

// emptyStockText 품목이 없는 카테고리에 표시하는 문구입니다. 지문에 포함되므로 바꾸면 모든 채널이 한 번씩 다시 전송됩니다.
const emptyStockText = "No stock available."

const (
	colorMain  = 0x00ff00
	colorEvent = 0xffc107
	colorEgg   = 0x3d85c6
)

// Renderer contract.Renderer 구현체입니다.
type Renderer struct {
	mentions MentionRules
}

var _ contract.Renderer = (*Renderer)(nil)

func NewRenderer(mentions MentionRules) *Renderer {
	return &Renderer{mentions: mentions}
}

// Render 채널에 맞는 임베드와 역할 호출 목록을 만듭니다. 임베드의 Timestamp는 now로 설정됩니다.
func (r *Renderer) Render(ch contract.Channel, snap contract.Snapshot, now time.Time) (contract.Payload, error) {
	var p contract.Payload

	switch ch {
	case contract.ChannelMain:
		p = contract.Payload{
			Mentions: r.mentions.Resolve(snap.Gears, snap.Seeds),
			Embed: contract.Embed{
				Title: "🌿 Grow-A-Garden Stock Update",
				Color: colorMain,
				Fields: []contract.Field{
					{Name: "🔧 Gears", Value: formatStock(snap.Gears), Inline: true},
					{Name: "🌱 Seeds", Value: formatStock(snap.Seeds), Inline: true},
					{Name: "🎭 Cosmetics", Value: formatStock(snap.Cosmetics), Inline: true},
				},
			},
		}

	case contract.ChannelEvent:
		p = contract.Payload{
			Mentions: r.mentions.Resolve(snap.Honey),
			Embed: contract.Embed{
				Title: "🐝 Grow-A-Garden Event Shop Update",
				Color: colorEvent,
				Fields: []contract.Field{
					{Name: "Event Shop Items", Value: formatStock(snap.Honey), Inline: false},
				},
			},
		}

	case contract.ChannelEgg:
		p = contract.Payload{
			Mentions: r.mentions.Resolve(snap.Eggs),
			Embed: contract.Embed{
				Title: "🥚 Grow-A-Garden Egg Shop Update",
				Color: colorEgg,
				Fields: []contract.Field{
					{Name: "Eggs", Value: formatStock(snap.Eggs), Inline: false},
				},
			},
		}

	default:
		return contract.Payload{}, NewErrUnknownChannel(ch)
	}

	p.Channel = ch
	ts := now
	p.Embed.Timestamp = &ts

	return p, nil
}

// formatStock 품목 목록을 "이름: 수량" 줄 단위 문자열로 만듭니다.
func formatStock(items []contract.StockItem) string {
	if len(items) == 0 {
		return emptyStockText
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(item.Name)
		sb.WriteString(": ")
		sb.WriteString(strconv.Itoa(item.Quantity))
	}
	return sb.String()
}
