// internal/pipeline/sort.go
package pipeline

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortField string

const (
	SortByTitle         SortField = "title"
	SortByNumber        SortField = "number"
	SortByPurchasePrice SortField = "purchase_price"
	SortByPurchaseDate  SortField = "purchase_date"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type SortState struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

func DefaultSort() SortState {
	return SortState{Field: SortByTitle, Direction: Ascending}
}

func ParseSortField(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByTitle, SortByNumber, SortByPurchasePrice, SortByPurchaseDate:
		return f
	default:
		return SortByTitle
	}
}

func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Sorter orders items using a collator for the given language.
type Sorter struct {
	tag language.Tag
}

func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

var defaultSorter = NewSorter(language.English)

// Sort orders items with the English collator.
func Sort(items []Item, state SortState) []Item {
	return defaultSorter.Sort(items, state)
}

// Sort returns a stably sorted copy. Descending is the exact reverse of the
// ascending result, so equal elements keep a deterministic position.
func (s *Sorter) Sort(items []Item, state SortState) []Item {
	out := slices.Clone(items)
	if out == nil {
		out = []Item{}
	}

	var cmp func(a, b Item) int
	switch ParseSortField(string(state.Field)) {
	case SortByNumber:
		cmp = func(a, b Item) int { return compareFloat(parseNumber(a.Number), parseNumber(b.Number)) }
	case SortByPurchasePrice:
		cmp = func(a, b Item) int {
			return compareFloat(finite(a.PurchasePrice.OrElse(0)), finite(b.PurchasePrice.OrElse(0)))
		}
	case SortByPurchaseDate:
		cmp = func(a, b Item) int { return dateKey(a).Compare(dateKey(b)) }
	default:
		// collate.Collator keeps internal buffers and is not safe for
		// concurrent use, so build one per call.
		col := collate.New(s.tag, collate.IgnoreCase)
		cmp = func(a, b Item) int { return col.CompareString(a.Title, b.Title) }
	}

	slices.SortStableFunc(out, cmp)
	if state.Direction == Descending {
		slices.Reverse(out)
	}
	return out
}

// parseNumber treats catalog numbers that are not plain numbers as 0.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// finite maps NaN and the infinities to 0 so comparisons stay a total order.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// dateKey sorts absent purchase dates before every real date.
func dateKey(it Item) time.Time {
	return it.PurchaseDate.OrElse(time.Time{})
}
