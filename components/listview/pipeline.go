package listview

import "sync"

// Pipeline owns the filter and page state for one page instance, plus the
// last-known-good collection borrowed from the Source. Every state change
// re-runs the derived stages in a fixed order so the render layer never sees
// a stale or out-of-range page:
//
//   - filter change: page resets to 1, then filter, aggregate, paginate
//   - collection change: filter with the existing state, clamp the page,
//     aggregate, paginate
//   - page change: paginate only
//
// The pipeline is safe for use from request handlers; all recomputation is
// synchronous under its lock.
type Pipeline struct {
	mu sync.Mutex

	def        PageDefinition
	collection []Item
	filtered   []Item
	filter     FilterState
	page       PageState
	stats      SummaryStats
	current    PageView

	loading  bool
	fetchErr string
}

// NewPipeline builds an empty pipeline for a page definition. Filter state is
// reset to defaults and the page starts at 1.
func NewPipeline(def PageDefinition) *Pipeline {
	p := &Pipeline{
		def:  def,
		page: PageState{Size: def.pageSize(), Current: 1},
	}
	p.refilter()
	return p
}

// Definition returns the page definition driving this pipeline.
func (p *Pipeline) Definition() PageDefinition {
	return p.def
}

// SetSearch replaces the free-text search and resets to page 1.
func (p *Pipeline) SetSearch(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter.Search = text
	p.page.Current = 1
	p.refilter()
}

// Select replaces a dimension's selected values and resets to page 1. An
// empty value set (or the "All" sentinel) leaves the dimension unfiltered.
func (p *Pipeline) Select(field string, values ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filter.Selections == nil {
		p.filter.Selections = make(map[string][]string)
	}
	p.filter.Selections[field] = append([]string(nil), values...)
	p.page.Current = 1
	p.refilter()
}

// ClearFilters resets search and selections to defaults and returns to page 1.
func (p *Pipeline) ClearFilters() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = FilterState{}
	p.page.Current = 1
	p.refilter()
}

// SetPage moves to the requested page; the paginator clamps out-of-range
// values. Filter and aggregate stages are untouched.
func (p *Pipeline) SetPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page.Current = n
	p.repaginate()
}

// NextPage advances one page, saturating at the last page.
func (p *Pipeline) NextPage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page.Current = p.current.Number + 1
	p.repaginate()
}

// PrevPage steps back one page, saturating at page 1.
func (p *Pipeline) PrevPage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page.Current = p.current.Number - 1
	p.repaginate()
}

// BeginFetch raises the loading flag. The current collection stays untouched
// while the fetch is outstanding.
func (p *Pipeline) BeginFetch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = true
}

// CompleteFetch settles an outstanding fetch. On success the new collection
// replaces the old one and the derived stages re-run with the existing filter
// state; the current page is clamped if the filtered count shrank. On error
// the last-known-good collection is kept and the error surfaces as a
// transient message on the view.
func (p *Pipeline) CompleteFetch(items []Item, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.fetchErr = err.Error()
		return
	}
	p.fetchErr = ""
	p.collection = items
	p.refilter()
}

// View returns a snapshot for the render layer. The snapshot does not alias
// pipeline state, so later mutations never race a render in progress.
func (p *Pipeline) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return View{
		PageCode:     p.def.Code,
		Items:        append([]Item(nil), p.current.Items...),
		CurrentPage:  p.current.Number,
		TotalPages:   p.current.TotalPages,
		VisiblePages: append([]int(nil), p.current.VisiblePages...),
		Stats:        p.statsCopy(),
		Filter:       p.filter.clone(),
		Loading:      p.loading,
		Err:          p.fetchErr,
	}
}

func (p *Pipeline) statsCopy() SummaryStats {
	stats := SummaryStats{Total: p.stats.Total, Sum: p.stats.Sum}
	stats.Counts = make(map[string]int, len(p.stats.Counts))
	for name, count := range p.stats.Counts {
		stats.Counts[name] = count
	}
	return stats
}

func (p *Pipeline) refilter() {
	p.filtered = Filter(p.collection, p.def, p.filter)
	p.stats = Aggregate(p.filtered, p.def)
	p.repaginate()
}

func (p *Pipeline) repaginate() {
	p.current = Paginate(p.filtered, p.page)
	p.page.Current = p.current.Number
}
