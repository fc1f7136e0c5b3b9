package notification

import (
	"slices"
	"strings"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
)

// MentionRule 품목 이름과 호출할 역할 ID의 대응입니다. 품목 이름은 대소문자를 구분합니다.
type MentionRule struct {
	Item   string
	RoleID string
}

// MentionRules 품목 이름 → 역할 ID 조회 테이블입니다. 생성 이후 변경되지 않습니다.
type MentionRules struct {
	roles map[string]string
}

// NewMentionRules 규칙 목록으로 조회 테이블을 만듭니다.
// 이름이나 역할 ID가 비어 있는 규칙은 무시하고, 같은 품목이 여러 번 나오면 마지막 규칙을 사용합니다.
func NewMentionRules(rules []MentionRule) MentionRules {
	roles := make(map[string]string, len(rules))
	for _, r := range rules {
		item := strings.TrimSpace(r.Item)
		roleID := strings.TrimSpace(r.RoleID)
		if item == "" || roleID == "" {
			continue
		}
		roles[item] = roleID
	}
	return MentionRules{roles: roles}
}

// Len 등록된 규칙 수를 반환합니다.
func (m MentionRules) Len() int {
	return len(m.roles)
}

// Resolve 재고가 1개 이상이면서 규칙에 등록된 품목의 역할 ID를 중복 없이 정렬하여 반환합니다.
// 호출 대상이 없으면 빈 슬라이스를 반환합니다.
func (m MentionRules) Resolve(groups ...[]contract.StockItem) []string {
	ids := []string{}
	if len(m.roles) == 0 {
		return ids
	}

	for _, items := range groups {
		for _, item := range items {
			if item.Quantity <= 0 {
				continue
			}
			if roleID, ok := m.roles[item.Name]; ok {
				ids = append(ids, roleID)
			}
		}
	}

	slices.Sort(ids)
	return slices.Compact(ids)
}
