package stock

import (
	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/tidwall/gjson"
)

// 상위 데이터의 카테고리 필드 이름
const (
	fieldGears     = "gearStock"
	fieldSeeds     = "seedsStock"
	fieldEggs      = "eggStock"
	fieldHoney     = "honeyStock"
	fieldCosmetics = "cosmeticsStock"
)

// Normalize 추출한 재고 JSON을 Snapshot으로 변환합니다. 실패하지 않습니다.
//
// 없는 카테고리나 배열이 아닌 카테고리는 빈 목록이 됩니다.
// 형식이 어긋난 항목은 버리지 않고, 읽을 수 있는 값만 채운 채로 그대로 통과시킵니다.
func Normalize(raw string) contract.Snapshot {
	doc := gjson.Parse(raw)
	return contract.Snapshot{
		Gears:     readItems(doc.Get(fieldGears)),
		Seeds:     readItems(doc.Get(fieldSeeds)),
		Eggs:      readItems(doc.Get(fieldEggs)),
		Honey:     readItems(doc.Get(fieldHoney)),
		Cosmetics: readItems(doc.Get(fieldCosmetics)),
	}
}

func readItems(v gjson.Result) []contract.StockItem {
	if !v.IsArray() {
		return []contract.StockItem{}
	}

	entries := v.Array()
	items := make([]contract.StockItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, readItem(e))
	}
	return items
}

// readItem 수량은 "value" 필드에서 읽고, 없으면 "quantity" 필드를 사용합니다.
func readItem(e gjson.Result) contract.StockItem {
	qty := e.Get("value")
	if !qty.Exists() {
		qty = e.Get("quantity")
	}
	return contract.StockItem{
		Name:     e.Get("name").String(),
		Quantity: int(qty.Int()),
	}
}
