// internal/pipeline/view.go
package pipeline

import "slices"

// Result is everything a list view renders for one parameter set.
type Result struct {
	Items      []Item       `json:"items"`
	Stats      Stats        `json:"stats"`
	Page       PageState    `json:"page"`
	TotalPages int          `json:"total_pages"`
	Window     []PageMarker `json:"window"`
}

// View owns one list's source set and its filter, sort and page parameters.
// Any change to the source, filter, sort or page size resets the current
// page to 1; only SetPage moves it elsewhere.
type View struct {
	source []Item
	filter FilterState
	sort   SortState
	page   PageState
	sorter *Sorter
}

func NewView(source []Item, opts ...ViewOption) *View {
	v := &View{
		source: slices.Clone(source),
		sort:   DefaultSort(),
		page:   DefaultPage(),
		sorter: defaultSorter,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type ViewOption func(*View)

func WithSorter(s *Sorter) ViewOption {
	return func(v *View) {
		if s != nil {
			v.sorter = s
		}
	}
}

func WithFilter(f FilterState) ViewOption {
	return func(v *View) { v.filter = f }
}

func WithSort(s SortState) ViewOption {
	return func(v *View) { v.sort = s }
}

// WithPage sets the initial page without the reset applied by setters.
func WithPage(p PageState) ViewOption {
	return func(v *View) { v.page = p.Normalize() }
}

func (v *View) SetSource(items []Item) {
	v.source = slices.Clone(items)
	v.resetPage()
}

func (v *View) SetFilter(f FilterState) {
	v.filter = f
	v.resetPage()
}

func (v *View) ClearFilters() {
	v.filter = FilterState{SearchNumberAndSeries: v.filter.SearchNumberAndSeries}
	v.resetPage()
}

func (v *View) SetSort(s SortState) {
	v.sort = s
	v.resetPage()
}

func (v *View) SetItemsPerPage(n int) {
	v.page.ItemsPerPage = n
	v.page = v.page.Normalize()
	v.resetPage()
}

func (v *View) SetPage(p int) {
	v.page.CurrentPage = p
	v.page = v.page.Normalize()
}

func (v *View) Filter() FilterState { return v.filter }
func (v *View) Sort() SortState     { return v.sort }
func (v *View) Page() PageState     { return v.page }

func (v *View) resetPage() {
	v.page.CurrentPage = 1
}

// Result runs filter, sort, aggregate and paginate over the current source.
func (v *View) Result() Result {
	return Run(v.sorter, v.source, v.filter, v.sort, v.page)
}

// Run executes the full pipeline once.
func Run(sorter *Sorter, source []Item, f FilterState, s SortState, p PageState) Result {
	if sorter == nil {
		sorter = defaultSorter
	}
	p = p.Normalize()

	filtered := Filter(source, f)
	sorted := sorter.Sort(filtered, s)
	totalPages := TotalPages(len(sorted), p.ItemsPerPage)

	return Result{
		Items:      Paginate(sorted, p),
		Stats:      Aggregate(len(source), filtered),
		Page:       p,
		TotalPages: totalPages,
		Window:     PageWindow(p.CurrentPage, totalPages, DefaultWindowSize),
	}
}
