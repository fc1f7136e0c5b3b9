package contract

import (
	"testing"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestChannel_Validate(t *testing.T) {
	t.Parallel()

	for _, ch := range Channels() {
		assert.NoError(t, ch.Validate(), ch)
	}

	err := Channel("weekly").Validate()
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestChannels_Order(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Channel{ChannelMain, ChannelEvent, ChannelEgg}, Channels())
}

func TestPayload_MentionContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Payload{}.MentionContent())
	assert.Equal(t, "<@&111>", Payload{Mentions: []string{"111"}}.MentionContent())
	assert.Equal(t, "<@&111> <@&222>", Payload{Mentions: []string{"111", "222"}}.MentionContent())
}

func TestEmptySnapshot(t *testing.T) {
	t.Parallel()

	s := EmptySnapshot()
	for _, items := range [][]StockItem{s.Gears, s.Seeds, s.Eggs, s.Honey, s.Cosmetics} {
		assert.NotNil(t, items)
		assert.Empty(t, items)
	}
}
