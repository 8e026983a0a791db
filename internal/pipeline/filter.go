// internal/pipeline/filter.go
package pipeline

import "strings"

// AllValues disables a category or condition filter, as does the empty string.
const AllValues = "all"

type FilterState struct {
	SearchQuery   string `json:"search_query"`
	Category      string `json:"category"`
	Condition     string `json:"condition"`
	ExclusiveOnly bool   `json:"exclusive_only"`

	// SearchNumberAndSeries widens the text search from title only to
	// title, catalog number and series tags (Search view behaviour).
	SearchNumberAndSeries bool `json:"search_number_and_series"`
}

func (f FilterState) IsZero() bool {
	return strings.TrimSpace(f.SearchQuery) == "" &&
		disabled(f.Category) &&
		disabled(f.Condition) &&
		!f.ExclusiveOnly
}

func disabled(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, AllValues)
}

// Filter returns the items matching every active predicate, in their
// original relative order. The input slice is never modified.
func Filter(items []Item, state FilterState) []Item {
	query := strings.ToLower(strings.TrimSpace(state.SearchQuery))
	byCondition := !disabled(state.Condition)
	// An unknown condition matches nothing.
	want, _ := ParseCondition(state.Condition)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if query != "" && !matchesQuery(it, query, state.SearchNumberAndSeries) {
			continue
		}
		if !disabled(state.Category) && it.Category != state.Category {
			continue
		}
		if byCondition {
			c, ok := it.Condition.Get()
			if !ok || want == "" || c != want {
				continue
			}
		}
		if state.ExclusiveOnly && !it.Exclusive {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it Item, query string, wide bool) bool {
	if strings.Contains(strings.ToLower(it.Title), query) {
		return true
	}
	if !wide {
		return false
	}
	if strings.Contains(strings.ToLower(it.Number), query) {
		return true
	}
	for _, s := range it.Series {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}
