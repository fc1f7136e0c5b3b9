package contract

// StockItem 상점에 진열된 단일 품목입니다. 이름은 대소문자를 구분합니다.
type StockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Snapshot 한 번의 조회 주기에서 얻은 전체 재고입니다.
// 생성 이후 변경하지 않으며, 모든 카테고리는 비어 있더라도 nil이 아닌 슬라이스입니다.
type Snapshot struct {
	Gears     []StockItem `json:"gears"`
	Seeds     []StockItem `json:"seeds"`
	Eggs      []StockItem `json:"eggs"`
	Honey     []StockItem `json:"honey"`
	Cosmetics []StockItem `json:"cosmetics"`
}

// EmptySnapshot 모든 카테고리가 비어 있는 스냅샷을 반환합니다.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Gears:     []StockItem{},
		Seeds:     []StockItem{},
		Eggs:      []StockItem{},
		Honey:     []StockItem{},
		Cosmetics: []StockItem{},
	}
}
