// internal/pipeline/paginate.go
package pipeline

const (
	DefaultItemsPerPage = 10
	DefaultWindowSize   = 5
)

// ItemsPerPageChoices are the page sizes offered to clients.
var ItemsPerPageChoices = []int{5, 10, 20, 50}

type PageState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

func DefaultPage() PageState {
	return PageState{CurrentPage: 1, ItemsPerPage: DefaultItemsPerPage}
}

// Normalize replaces non-positive values with the defaults.
func (p PageState) Normalize() PageState {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = DefaultItemsPerPage
	}
	return p
}

// ValidItemsPerPage reports whether n is one of the offered page sizes.
func ValidItemsPerPage(n int) bool {
	for _, c := range ItemsPerPageChoices {
		if c == n {
			return true
		}
	}
	return false
}

// TotalPages is never less than 1, even for an empty set.
func TotalPages(count, perPage int) int {
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}
	if count <= 0 {
		return 1
	}
	return (count-1)/perPage + 1
}

// Paginate returns the window [(page-1)*perPage, page*perPage). A page past
// the end yields an empty slice; clamping is the caller's job.
func Paginate(items []Item, page PageState) []Item {
	page = page.Normalize()
	// Compare page indexes rather than offsets so huge page numbers cannot
	// overflow the multiplication.
	if len(items) == 0 || page.CurrentPage-1 > (len(items)-1)/page.ItemsPerPage {
		return []Item{}
	}
	start := (page.CurrentPage - 1) * page.ItemsPerPage
	end := start + min(page.ItemsPerPage, len(items)-start)
	out := make([]Item, end-start)
	copy(out, items[start:end])
	return out
}

// PageMarker is one entry of the page control: a page number or an ellipsis.
type PageMarker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageWindow lists up to size page numbers around current plus the first
// and last pages, with ellipsis markers standing in for skipped runs.
func PageWindow(current, total, size int) []PageMarker {
	if total < 1 {
		total = 1
	}
	if size < 1 {
		size = DefaultWindowSize
	}
	current = max(1, min(current, total))

	if total <= size {
		out := make([]PageMarker, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, PageMarker{Page: p, Current: p == current})
		}
		return out
	}

	start := current - size/2
	end := start + size - 1
	if start < 1 {
		start, end = 1, size
	}
	if end > total {
		start, end = total-size+1, total
	}

	out := make([]PageMarker, 0, size+4)
	if start > 1 {
		out = append(out, PageMarker{Page: 1, Current: current == 1})
		if start > 2 {
			out = append(out, PageMarker{Ellipsis: true})
		}
	}
	for p := start; p <= end; p++ {
		out = append(out, PageMarker{Page: p, Current: p == current})
	}
	if end < total {
		if end < total-1 {
			out = append(out, PageMarker{Ellipsis: true})
		}
		out = append(out, PageMarker{Page: total, Current: current == total})
	}
	return out
}
