package derive

import (
	"sort"
	"strings"

	"github.com/korlebu/facilitypulse/internal/domain/entities"
)

const defaultSpecialtyLimit = 10

// BuildSpecialtyOptions frequency-ranks the free-text specialty tags across
// the dataset and returns the top limit entries. Matching is exact after
// trimming, so differing capitalization counts separately. Ties keep
// first-seen order.
func BuildSpecialtyOptions(facilities []entities.Facility, limit int) []string {
	if limit <= 0 {
		limit = defaultSpecialtyLimit
	}

	counts := make(map[string]int)
	var order []string
	for i := range facilities {
		for _, raw := range facilities[i].RawSpecialties {
			specialty := strings.TrimSpace(raw)
			if specialty == "" {
				continue
			}
			if _, ok := counts[specialty]; !ok {
				order = append(order, specialty)
			}
			counts[specialty]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
