package pipeline

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleItems() []Item {
	return []Item{
		{
			ID: "1", Title: "Harry Potter", Number: "01", Category: "Movies",
			Series:        []string{"Harry Potter", "Wizarding World"},
			Condition:     Some(ConditionMint),
			PurchasePrice: Some(29.99),
			PurchaseDate:  Some(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			ID: "2", Title: "Batman", Number: "144", Category: "Heroes", Exclusive: true,
			Series:        []string{"DC Comics"},
			Condition:     Some(ConditionNearMint),
			PurchasePrice: Some(19.99),
			PurchaseDate:  Some(time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			ID: "3", Title: "Superman", Number: "07", Category: "Heroes",
			Series:        []string{"DC Comics"},
			Condition:     Some(ConditionGood),
			PurchasePrice: Some(15.50),
		},
	}
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestFilterByConditionAndValue(t *testing.T) {
	items := sampleItems()
	filtered := Filter(items, FilterState{Condition: "mint"})

	assert.Equal(t, []string{"Harry Potter"}, titles(filtered))
	assert.Equal(t, 29.99, Aggregate(len(items), filtered).TotalValue)
}

func TestFilterConditionIgnoresCase(t *testing.T) {
	items := sampleItems()
	for _, cond := range []string{"Mint", "MINT", " mint "} {
		assert.Equal(t, []string{"Harry Potter"}, titles(Filter(items, FilterState{Condition: cond})), "condition %q", cond)
	}
	assert.Equal(t, []string{"Batman"}, titles(Filter(items, FilterState{Condition: "Near_Mint"})))
	assert.Empty(t, Filter(items, FilterState{Condition: "shiny"}))
	assert.Len(t, Filter(items, FilterState{Condition: "ALL"}), 3)
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	items := sampleItems()
	for _, q := range []string{"man", "MAN", "  bat ", "potter", "zzz"} {
		got := Filter(items, FilterState{SearchQuery: q})
		for _, it := range got {
			assert.Contains(t, strings.ToLower(it.Title), strings.ToLower(strings.TrimSpace(q)), "query %q", q)
		}
	}
	assert.Len(t, Filter(items, FilterState{SearchQuery: "   "}), 3)
}

func TestFilterWideSearchMatchesNumberAndSeries(t *testing.T) {
	items := sampleItems()

	assert.Empty(t, Filter(items, FilterState{SearchQuery: "dc comics"}))
	got := Filter(items, FilterState{SearchQuery: "dc comics", SearchNumberAndSeries: true})
	assert.Equal(t, []string{"Batman", "Superman"}, titles(got))

	got = Filter(items, FilterState{SearchQuery: "144", SearchNumberAndSeries: true})
	assert.Equal(t, []string{"Batman"}, titles(got))

	noSeries := []Item{{ID: "x", Title: "Groot", Number: "49"}}
	assert.Empty(t, Filter(noSeries, FilterState{SearchQuery: "marvel", SearchNumberAndSeries: true}))
}

func TestFilterCombinesPredicates(t *testing.T) {
	items := sampleItems()

	got := Filter(items, FilterState{Category: "Heroes", ExclusiveOnly: true})
	assert.Equal(t, []string{"Batman"}, titles(got))

	got = Filter(items, FilterState{Category: "all", Condition: "all"})
	assert.Len(t, got, 3)

	withMissing := append(sampleItems(), Item{ID: "4", Title: "Loose"})
	assert.Len(t, Filter(withMissing, FilterState{Condition: "all"}), 4)
	assert.Len(t, Filter(withMissing, FilterState{Condition: "poor"}), 0)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := titles(items)

	_ = Filter(items, FilterState{SearchQuery: "man"})
	_ = Sort(items, SortState{Field: SortByTitle, Direction: Descending})

	assert.Equal(t, before, titles(items))
}

func TestSortByPrice(t *testing.T) {
	items := sampleItems()

	asc := Sort(items, SortState{Field: SortByPurchasePrice, Direction: Ascending})
	assert.Equal(t, []string{"Superman", "Batman", "Harry Potter"}, titles(asc))

	desc := Sort(items, SortState{Field: SortByPurchasePrice, Direction: Descending})
	assert.Equal(t, []string{"Harry Potter", "Batman", "Superman"}, titles(desc))
}

func TestSortDescendingIsReverseOfAscending(t *testing.T) {
	items := sampleItems()
	for _, f := range []SortField{SortByTitle, SortByNumber, SortByPurchasePrice, SortByPurchaseDate} {
		asc := titles(Sort(items, SortState{Field: f, Direction: Ascending}))
		desc := titles(Sort(items, SortState{Field: f, Direction: Descending}))
		for i, j := 0, len(asc)-1; i < j; i, j = i+1, j-1 {
			asc[i], asc[j] = asc[j], asc[i]
		}
		assert.Equal(t, asc, desc, "field %s", f)
	}
}

func TestSortByNumberTreatsNonNumericAsZero(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "A", Number: "12"},
		{ID: "b", Title: "B", Number: "N/A"},
		{ID: "c", Title: "C", Number: "3"},
		{ID: "d", Title: "D", Number: "SE-01"},
	}
	got := Sort(items, SortState{Field: SortByNumber, Direction: Ascending})
	assert.Equal(t, []string{"B", "D", "C", "A"}, titles(got))
}

func TestSortByNumberTreatsNaNAndInfAsZero(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "A", Number: "3"},
		{ID: "b", Title: "B", Number: "NaN"},
		{ID: "c", Title: "C", Number: "1"},
		{ID: "d", Title: "D", Number: "2"},
		{ID: "e", Title: "E", Number: "-Inf"},
		{ID: "f", Title: "F", Number: "infinity"},
	}
	got := Sort(items, SortState{Field: SortByNumber, Direction: Ascending})
	assert.Equal(t, []string{"B", "E", "F", "C", "D", "A"}, titles(got))
}

func TestSortByPriceTreatsNaNAsZero(t *testing.T) {
	items := []Item{
		{ID: "a", Title: "A", PurchasePrice: Some(5.0)},
		{ID: "b", Title: "B", PurchasePrice: Some(math.NaN())},
		{ID: "c", Title: "C", PurchasePrice: Some(1.0)},
		{ID: "d", Title: "D", PurchasePrice: Some(math.Inf(1))},
	}
	got := Sort(items, SortState{Field: SortByPurchasePrice, Direction: Ascending})
	assert.Equal(t, []string{"B", "D", "C", "A"}, titles(got))
	assert.Equal(t, 6.0, Aggregate(len(items), items).TotalValue)
}

func TestSortByDateMissingFirst(t *testing.T) {
	got := Sort(sampleItems(), SortState{Field: SortByPurchaseDate, Direction: Ascending})
	assert.Equal(t, []string{"Superman", "Batman", "Harry Potter"}, titles(got))
}

func TestSortTitleLocaleAware(t *testing.T) {
	items := []Item{
		{ID: "1", Title: "zebra"},
		{ID: "2", Title: "Éclair"},
		{ID: "3", Title: "apple"},
	}
	got := NewSorter(language.French).Sort(items, SortState{Field: SortByTitle})
	assert.Equal(t, []string{"apple", "Éclair", "zebra"}, titles(got))
}

func TestSortIsStableForTies(t *testing.T) {
	items := []Item{
		{ID: "1", Title: "Same", PurchasePrice: Some(10.0)},
		{ID: "2", Title: "Other", PurchasePrice: Some(10.0)},
		{ID: "3", Title: "Third", PurchasePrice: Some(10.0)},
	}
	got := Sort(items, SortState{Field: SortByPurchasePrice})
	assert.Equal(t, []string{"Same", "Other", "Third"}, titles(got))
}

func numbered(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprint(i), Title: fmt.Sprintf("Pop %02d", i), Number: fmt.Sprint(i)}
	}
	return items
}

func TestPaginateTwelveItems(t *testing.T) {
	items := numbered(12)

	assert.Equal(t, 2, TotalPages(len(items), 10))
	assert.Len(t, Paginate(items, PageState{CurrentPage: 1, ItemsPerPage: 10}), 10)
	assert.Len(t, Paginate(items, PageState{CurrentPage: 2, ItemsPerPage: 10}), 2)
	assert.Empty(t, Paginate(items, PageState{CurrentPage: 3, ItemsPerPage: 10}))
}

func TestPaginationCoversEverything(t *testing.T) {
	items := numbered(23)
	for _, per := range ItemsPerPageChoices {
		var all []Item
		for p := 1; p <= TotalPages(len(items), per); p++ {
			all = append(all, Paginate(items, PageState{CurrentPage: p, ItemsPerPage: per})...)
		}
		assert.Equal(t, titles(items), titles(all), "per page %d", per)
	}
}

func TestEmptySource(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(0, nil))
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Empty(t, Paginate(nil, DefaultPage()))

	res := NewView(nil).Result()
	assert.Equal(t, 1, res.TotalPages)
	assert.Empty(t, res.Items)
	assert.Equal(t, []PageMarker{{Page: 1, Current: true}}, res.Window)
}

func TestAggregate(t *testing.T) {
	items := sampleItems()
	items = append(items, Item{ID: "4", Title: "No Price", Series: []string{"Marvel"}})

	stats := Aggregate(10, items)
	assert.Equal(t, 10, stats.TotalCount)
	assert.Equal(t, len(items), stats.FilteredCount)
	assert.Equal(t, 65.48, stats.TotalValue)
	assert.Equal(t, 4, stats.UniqueSeriesCount)
}

func TestPageWindow(t *testing.T) {
	render := func(ms []PageMarker) string {
		s := ""
		for _, m := range ms {
			if m.Ellipsis {
				s += "… "
			} else if m.Current {
				s += fmt.Sprintf("[%d] ", m.Page)
			} else {
				s += fmt.Sprintf("%d ", m.Page)
			}
		}
		return s
	}

	assert.Equal(t, "[1] 2 3 ", render(PageWindow(1, 3, 5)))
	assert.Equal(t, "[1] 2 3 4 5 … 10 ", render(PageWindow(1, 10, 5)))
	assert.Equal(t, "1 … 4 5 [6] 7 8 … 10 ", render(PageWindow(6, 10, 5)))
	assert.Equal(t, "1 … 6 7 8 9 [10] ", render(PageWindow(10, 10, 5)))
	assert.Equal(t, "1 2 [3] 4 5 … 10 ", render(PageWindow(3, 10, 5)))
	assert.Equal(t, "1 2 3 [4] 5 6 … 10 ", render(PageWindow(4, 10, 5)))
}

func TestViewResetsPageOnChange(t *testing.T) {
	v := NewView(numbered(30))
	v.SetPage(3)
	require.Equal(t, 3, v.Page().CurrentPage)
	assert.Len(t, v.Result().Items, 10)

	v.SetFilter(FilterState{SearchQuery: "pop 0"})
	assert.Equal(t, 1, v.Page().CurrentPage)
	res := v.Result()
	assert.Equal(t, 10, res.Stats.FilteredCount)
	assert.Equal(t, 30, res.Stats.TotalCount)

	v.SetPage(2)
	v.SetSort(SortState{Field: SortByNumber, Direction: Descending})
	assert.Equal(t, 1, v.Page().CurrentPage)

	v.SetPage(2)
	v.SetItemsPerPage(20)
	assert.Equal(t, PageState{CurrentPage: 1, ItemsPerPage: 20}, v.Page())

	v.SetPage(2)
	v.ClearFilters()
	assert.Equal(t, 1, v.Page().CurrentPage)
	assert.True(t, v.Filter().IsZero())

	v.SetPage(2)
	v.SetSource(numbered(5))
	assert.Equal(t, 1, v.Page().CurrentPage)
}

func TestViewOptionsDoNotResetPage(t *testing.T) {
	v := NewView(numbered(23),
		WithSorter(NewSorter(language.Polish)),
		WithFilter(FilterState{SearchQuery: "pop"}),
		WithSort(SortState{Field: SortByNumber, Direction: Descending}),
		WithPage(PageState{CurrentPage: 3, ItemsPerPage: 10}),
	)

	res := v.Result()
	assert.Equal(t, 3, res.Page.CurrentPage)
	assert.Equal(t, []string{"Pop 02", "Pop 01", "Pop 00"}, titles(res.Items))

	v.SetFilter(FilterState{SearchQuery: "pop 1"})
	assert.Equal(t, 1, v.Page().CurrentPage)
}

func TestRunIsIdempotent(t *testing.T) {
	items := sampleItems()
	f := FilterState{Category: "Heroes"}
	s := SortState{Field: SortByTitle, Direction: Descending}

	once := Sort(Filter(items, f), s)
	twice := Sort(Filter(once, f), s)
	assert.Equal(t, titles(once), titles(twice))
}

func TestStalePageYieldsEmptyPage(t *testing.T) {
	res := Run(nil, sampleItems(), FilterState{}, DefaultSort(), PageState{CurrentPage: 4, ItemsPerPage: 10})
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, res.TotalPages)
}

func TestHugePageYieldsEmptyPage(t *testing.T) {
	for _, page := range []int{4611686018427387905, math.MaxInt, math.MaxInt / 10} {
		res := Run(nil, numbered(12), FilterState{}, DefaultSort(), PageState{CurrentPage: page, ItemsPerPage: 10})
		assert.Empty(t, res.Items, "page %d", page)
		assert.Equal(t, 2, res.TotalPages)
	}

	res := Run(nil, numbered(12), FilterState{}, DefaultSort(), PageState{CurrentPage: 1, ItemsPerPage: math.MaxInt})
	assert.Len(t, res.Items, 12)
	assert.Equal(t, 1, res.TotalPages)
}

func TestDeriveID(t *testing.T) {
	a := DeriveID("Batman", "144")
	assert.Equal(t, a, DeriveID("  batman ", "144"))
	assert.NotEqual(t, a, DeriveID("Batman", "145"))
	assert.Len(t, a, 16)

	items := EnsureIDs([]Item{{Title: "Batman", Number: "144"}, {ID: "keep", Title: "X"}})
	assert.Equal(t, a, items[0].ID)
	assert.Equal(t, "keep", items[1].ID)
}

func TestOptional(t *testing.T) {
	var none Optional[float64]
	assert.False(t, none.Present())
	assert.Nil(t, none.Ptr())
	assert.Equal(t, 1.5, none.OrElse(1.5))

	p := 2.5
	some := FromPtr(&p)
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
	assert.Equal(t, 2.5, *some.Ptr())
}
