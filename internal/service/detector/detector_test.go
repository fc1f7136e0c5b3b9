package detector

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/stock-notifier/internal/pkg/errors"
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/internal/service/contract/mocks"
	"github.com/darkkaiser/stock-notifier/internal/service/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleEmbed(value string) contract.Embed {
	return contract.Embed{
		Title: "🥚 Grow-A-Garden Egg Shop Update",
		Color: 0x3d85c6,
		Fields: []contract.Field{
			{Name: "Eggs", Value: value, Inline: false},
		},
	}
}

func TestFingerprint_Format(t *testing.T) {
	fp, err := Fingerprint([]string{"111", "222"}, sampleEmbed("Bug Egg: 1"))
	require.NoError(t, err)

	expected := `{"rolePings":["<@&111>","<@&222>"],"embed":{"title":"🥚 Grow-A-Garden Egg Shop Update","color":4031942,"fields":[{"name":"Eggs","value":"Bug Egg: 1","inline":false}]}}`
	assert.Equal(t, expected, fp)
}

func TestFingerprint_NoMentions(t *testing.T) {
	fp, err := Fingerprint(nil, sampleEmbed("No stock available."))
	require.NoError(t, err)
	assert.Contains(t, fp, `"rolePings":[]`)
}

func TestFingerprint_IgnoresTimestamp(t *testing.T) {
	t1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	e1 := sampleEmbed("Bug Egg: 1")
	e1.Timestamp = &t1
	e2 := sampleEmbed("Bug Egg: 1")
	e2.Timestamp = &t2

	fp1, err := Fingerprint([]string{"1"}, e1)
	require.NoError(t, err)
	fp2, err := Fingerprint([]string{"1"}, e2)
	require.NoError(t, err)

	assert.Equal(t, fp1, fp2)
	assert.NotContains(t, fp1, "timestamp")

	// 원본 임베드는 수정되지 않아야 합니다.
	assert.NotNil(t, e1.Timestamp)
}

func TestFingerprint_DetectsQuantityChange(t *testing.T) {
	zero, err := Fingerprint(nil, sampleEmbed("Bug Egg: 0"))
	require.NoError(t, err)
	one, err := Fingerprint(nil, sampleEmbed("Bug Egg: 1"))
	require.NoError(t, err)

	assert.NotEqual(t, zero, one)
}

func TestPayloadFingerprint(t *testing.T) {
	p := contract.Payload{Channel: contract.ChannelEgg, Mentions: []string{"9"}, Embed: sampleEmbed("x: 1")}

	a, err := PayloadFingerprint(p)
	require.NoError(t, err)
	b, err := Fingerprint(p.Mentions, p.Embed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDetector_HasChangedAndCommit(t *testing.T) {
	store := &mocks.MockStateStore{}
	store.On("Save", DefaultStateName, mock.Anything).Return(nil)

	d := New(store, "")

	assert.True(t, d.HasChanged(contract.ChannelMain, "fp-1"), "빈 상태에서는 항상 변경으로 판단해야 합니다")

	d.Commit(contract.ChannelMain, "fp-1")
	assert.False(t, d.HasChanged(contract.ChannelMain, "fp-1"))
	assert.True(t, d.HasChanged(contract.ChannelMain, "fp-2"))

	// 다른 채널의 상태에는 영향을 주지 않습니다.
	assert.True(t, d.HasChanged(contract.ChannelEgg, "fp-1"))

	store.AssertCalled(t, "Save", DefaultStateName, ChannelStates{Main: "fp-1"})
}

func TestDetector_Commit_PersistFailureIsIgnored(t *testing.T) {
	store := &mocks.MockStateStore{}
	store.On("Save", mock.Anything, mock.Anything).Return(apperrors.New(apperrors.System, "disk full"))

	d := New(store, "state")
	d.Commit(contract.ChannelEvent, "fp")

	assert.False(t, d.HasChanged(contract.ChannelEvent, "fp"), "저장 실패와 무관하게 메모리 상태는 갱신되어야 합니다")
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestDetector_Commit_UnknownChannel(t *testing.T) {
	store := &mocks.MockStateStore{}

	d := New(store, "")
	d.Commit(contract.Channel("bogus"), "fp")

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDetector_Load(t *testing.T) {
	t.Run("저장된 상태 복원", func(t *testing.T) {
		store := &mocks.MockStateStore{}
		store.On("Load", DefaultStateName, mock.AnythingOfType("*detector.ChannelStates")).
			Run(func(args mock.Arguments) {
				s := args.Get(1).(*ChannelStates)
				s.Main = "m"
				s.Egg = "e"
			}).
			Return(nil)

		d := New(store, "")
		d.Load()

		assert.False(t, d.HasChanged(contract.ChannelMain, "m"))
		assert.True(t, d.HasChanged(contract.ChannelEvent, ""))
		assert.False(t, d.HasChanged(contract.ChannelEgg, "e"))
	})

	t.Run("상태 없음", func(t *testing.T) {
		store := &mocks.MockStateStore{}
		store.On("Load", mock.Anything, mock.Anything).Return(contract.ErrStateNotFound)

		d := New(store, "")
		d.Load()

		for _, ch := range contract.Channels() {
			assert.True(t, d.HasChanged(ch, "any"))
		}
	})

	t.Run("손상된 상태", func(t *testing.T) {
		store := &mocks.MockStateStore{}
		store.On("Load", mock.Anything, mock.Anything).Return(errors.New("unexpected end of JSON input"))

		d := New(store, "")
		d.Load()

		for _, ch := range contract.Channels() {
			assert.True(t, d.HasChanged(ch, "any"))
		}
	})
}

func TestDetector_FileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	fs := storage.NewFileStore(dir)

	d1 := New(fs, "")
	d1.Load()
	d1.Commit(contract.ChannelMain, "main-fp")
	d1.Commit(contract.ChannelEgg, "egg-fp")

	// 재시작을 흉내냅니다.
	d2 := New(fs, "")
	d2.Load()

	assert.False(t, d2.HasChanged(contract.ChannelMain, "main-fp"))
	assert.True(t, d2.HasChanged(contract.ChannelEvent, "anything"))
	assert.False(t, d2.HasChanged(contract.ChannelEgg, "egg-fp"))

	var raw map[string]string
	require.NoError(t, fs.Load(DefaultStateName, &raw))
	assert.Equal(t, map[string]string{"main": "main-fp", "event": "", "egg": "egg-fp"}, raw)
}

func TestDetector_LoadsLegacyStateFile(t *testing.T) {
	dir := t.TempDir()

	fp, err := Fingerprint(nil, sampleEmbed("Bug Egg: 1"))
	require.NoError(t, err)

	legacy, err := json.MarshalIndent(map[string]string{"main": "", "event": "", "egg": fp}, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultStateName+".json"), legacy, 0o644))

	d := New(storage.NewFileStore(dir), "")
	d.Load()

	assert.False(t, d.HasChanged(contract.ChannelEgg, fp), "이전 형식 상태 파일의 지문과 같으면 다시 보내지 않습니다")
	assert.True(t, d.HasChanged(contract.ChannelMain, fp))
}

func TestDetector_States(t *testing.T) {
	store := &mocks.MockStateStore{}
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := New(store, "")
	d.now = func() time.Time { return fixed }

	d.Commit(contract.ChannelEvent, "fp")

	states := d.States()
	require.Len(t, states, 3)

	assert.Equal(t, contract.ChannelMain, states[0].Channel)
	assert.False(t, states[0].HasFingerprint)
	assert.Nil(t, states[0].CommittedAt)

	assert.Equal(t, contract.ChannelEvent, states[1].Channel)
	assert.True(t, states[1].HasFingerprint)
	require.NotNil(t, states[1].CommittedAt)
	assert.Equal(t, fixed, *states[1].CommittedAt)

	assert.Equal(t, contract.ChannelEgg, states[2].Channel)
}

func TestDetector_Concurrency(t *testing.T) {
	store := &mocks.MockStateStore{}
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	d := New(store, "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.Commit(contract.ChannelMain, "fp")
		}()
		go func() {
			defer wg.Done()
			_ = d.HasChanged(contract.ChannelMain, "fp")
			_ = d.States()
		}()
	}
	wg.Wait()

	assert.False(t, d.HasChanged(contract.ChannelMain, "fp"))
}
