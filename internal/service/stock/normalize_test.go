package stock

import (
	"testing"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("전체 카테고리", func(t *testing.T) {
		t.Parallel()

		raw := `{
			"gearStock":[{"name":"Trowel","value":2},{"name":"Master Sprinkler","value":1}],
			"seedsStock":[{"name":"Carrot","value":10}],
			"eggStock":[{"name":"Bug Egg","value":1}],
			"honeyStock":[{"name":"Flower Seed Pack","value":3}],
			"cosmeticsStock":[{"name":"Sign","value":1}]
		}`

		snap := Normalize(raw)
		assert.Equal(t, []contract.StockItem{{Name: "Trowel", Quantity: 2}, {Name: "Master Sprinkler", Quantity: 1}}, snap.Gears)
		assert.Equal(t, []contract.StockItem{{Name: "Carrot", Quantity: 10}}, snap.Seeds)
		assert.Equal(t, []contract.StockItem{{Name: "Bug Egg", Quantity: 1}}, snap.Eggs)
		assert.Equal(t, []contract.StockItem{{Name: "Flower Seed Pack", Quantity: 3}}, snap.Honey)
		assert.Equal(t, []contract.StockItem{{Name: "Sign", Quantity: 1}}, snap.Cosmetics)
	})

	t.Run("없는 카테고리는 빈 목록", func(t *testing.T) {
		t.Parallel()

		snap := Normalize(`{"seedsStock":[{"name":"Carrot","value":1}],"eggStock":null,"gearStock":"n/a"}`)
		assert.Equal(t, contract.EmptySnapshot().Gears, snap.Gears)
		assert.NotNil(t, snap.Eggs)
		assert.Empty(t, snap.Eggs)
		assert.Empty(t, snap.Honey)
		assert.Empty(t, snap.Cosmetics)
		assert.Len(t, snap.Seeds, 1)
	})

	t.Run("형식이 어긋난 항목은 통과", func(t *testing.T) {
		t.Parallel()

		snap := Normalize(`{"gearStock":[{"name":"NoValue"},{"value":3},{"name":"Alt","quantity":4},{"name":"Str","value":"5"},42]}`)
		assert.Equal(t, []contract.StockItem{
			{Name: "NoValue", Quantity: 0},
			{Name: "", Quantity: 3},
			{Name: "Alt", Quantity: 4},
			{Name: "Str", Quantity: 5},
			{Name: "", Quantity: 0},
		}, snap.Gears)
	})

	t.Run("빈 입력", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, contract.EmptySnapshot(), Normalize(""))
	})
}
