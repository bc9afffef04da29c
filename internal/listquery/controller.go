// Package listquery owns pagination, sorting and filter state for paginated
// list views. A Controller is the single source of truth for "where am I in
// this list and how is it filtered", decoupled from the data fetch itself.
package listquery

import (
	"reflect"
	"sync"
)

// SortDirection orders a sorted list view.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// Filters maps filter keys to scalar values. Keys with empty or nil values
// are never retained.
type Filters map[string]interface{}

// DefaultPageSize applies when a Controller is built with a non-positive size.
const DefaultPageSize = 10

// Params is an immutable snapshot of the query parameters a fetch should use.
// Generation identifies the controller state the snapshot was taken from, so
// responses that arrive after further state changes can be discarded.
type Params struct {
	Limit         int
	Offset        int
	SortField     string
	SortDirection SortDirection
	Filters       Filters
	Generation    uint64
}

// Controller holds list view state. It performs no I/O and none of its
// operations can fail; invalid input is ignored rather than reported, since
// callers derive arguments from already-validated UI state.
type Controller struct {
	mu         sync.Mutex
	page       int
	pageSize   int
	total      int
	sortField  string
	sortDir    SortDirection
	filters    Filters
	generation uint64
}

// NewController builds a controller on page 1 with the given page size.
func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		page:     1,
		pageSize: pageSize,
		filters:  Filters{},
	}
}

// Page returns the current 1-based page.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the current page size.
func (c *Controller) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

// Total returns the last server-reported item count.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages derives the page count from the reported total. An empty list
// still has one (empty) page.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalPages(c.total, c.pageSize)
}

func totalPages(total, size int) int {
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Offset returns the item offset of the current page.
func (c *Controller) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return (c.page - 1) * c.pageSize
}

// Sort returns the active sort field and direction. ok is false when no sort
// has been selected.
func (c *Controller) Sort() (field string, dir SortDirection, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortField, c.sortDir, c.sortField != ""
}

// ActiveFilters returns a copy of the retained filter map.
func (c *Controller) ActiveFilters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyFilters(c.filters)
}

// Generation returns the current state generation. It advances whenever a
// change that should trigger a re-fetch is applied.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Params snapshots the fetch parameters for the current state.
func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Params{
		Limit:         c.pageSize,
		Offset:        (c.page - 1) * c.pageSize,
		SortField:     c.sortField,
		SortDirection: c.sortDir,
		Filters:       copyFilters(c.filters),
		Generation:    c.generation,
	}
}

// SetPage sets the current page verbatim. Callers clamp n to the rendered
// page-link range; the controller does not validate bounds. Setting the page
// it is already on changes nothing.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == c.page {
		return
	}
	c.page = n
	c.generation++
}

// SetPageSize updates the page size and resets to page 1. Non-positive or
// unchanged sizes are ignored.
func (c *Controller) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 || n == c.pageSize {
		return
	}
	c.pageSize = n
	c.page = 1
	c.generation++
}

// ToggleSort selects the sort field. Re-selecting the ascending field flips
// it to descending; every other case lands on ascending. Always resets to
// page 1.
func (c *Controller) ToggleSort(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if field == c.sortField && c.sortDir == SortAscending {
		c.sortDir = SortDescending
	} else {
		c.sortField = field
		c.sortDir = SortAscending
	}
	c.page = 1
	c.generation++
}

// SetSort selects the sort field and direction verbatim, for callers that
// carry the full sort state themselves. Unknown directions fall back to
// ascending. A change resets to page 1; setting the active sort is a no-op.
func (c *Controller) SetSort(field string, dir SortDirection) {
	if dir != SortAscending && dir != SortDescending {
		dir = SortAscending
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if field == c.sortField && dir == c.sortDir {
		return
	}
	c.sortField = field
	c.sortDir = dir
	c.page = 1
	c.generation++
}

// ApplyFilters replaces the filter map, dropping entries whose value is nil
// or an empty string, and resets to page 1. Applying a map equal to the
// current one is a no-op so duplicate submits do not trigger re-fetches.
func (c *Controller) ApplyFilters(filters Filters) {
	pruned := pruneFilters(filters)

	c.mu.Lock()
	defer c.mu.Unlock()
	if reflect.DeepEqual(pruned, c.filters) {
		return
	}
	c.filters = pruned
	c.page = 1
	c.generation++
}

// ResetFilters clears all filters and resets to page 1. A no-op when no
// filters are active.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.filters) == 0 {
		return
	}
	c.filters = Filters{}
	c.page = 1
	c.generation++
}

// ReportTotal records the server-reported item count. It is the only writer
// of the total; callers must pass the count field of the response, never the
// length of the returned page. Negative counts are ignored.
func (c *Controller) ReportTotal(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		return
	}
	c.total = n
}

func pruneFilters(in Filters) Filters {
	out := Filters{}
	for k, v := range in {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func copyFilters(in Filters) Filters {
	out := make(Filters, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
