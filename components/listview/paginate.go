package listview

// DefaultPageSize matches the table layouts in the admin pages.
const DefaultPageSize = 12

// maxVisiblePages bounds the pager's page-number window.
const maxVisiblePages = 5

// PageView is the paginator output for one page of a filtered collection.
type PageView struct {
	Items        []Item
	Number       int
	TotalPages   int
	VisiblePages []int
}

// Paginate slices a filtered collection according to the page state. The
// current page is clamped into [1, totalPages] before slicing, so a shrinking
// collection can never leave the caller on an empty page.
func Paginate(items []Item, state PageState) PageView {
	size := state.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page := clamp(state.Current, 1, total)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return PageView{
		Items:        append([]Item(nil), items[start:end]...),
		Number:       page,
		TotalPages:   total,
		VisiblePages: VisiblePages(page, total),
	}
}

// TotalPages returns max(1, ceil(count/size)); an empty collection still has
// one (empty) page.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// VisiblePages computes the contiguous window of page numbers shown by the
// pager controls. All pages are shown when totalPages fits in the window;
// otherwise the window is centered on the current page and shifted back
// inside [1, totalPages] when centering would run past either edge. The same
// (current, total) pair always yields the same window.
func VisiblePages(current, total int) []int {
	if total < 1 {
		total = 1
	}
	current = clamp(current, 1, total)

	count := total
	if count > maxVisiblePages {
		count = maxVisiblePages
	}
	start := current - maxVisiblePages/2
	if start < 1 {
		start = 1
	}
	if start+count-1 > total {
		start = total - count + 1
	}

	pages := make([]int, count)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
