package listquery

import "testing"

func TestController_TotalPages(t *testing.T) {
	c := NewController(10)
	if got := c.TotalPages(); got != 1 {
		t.Fatalf("empty list should have one page, got %d", got)
	}

	c.ReportTotal(23)
	if got := c.TotalPages(); got != 3 {
		t.Fatalf("23 items at size 10 should give 3 pages, got %d", got)
	}

	c.ReportTotal(30)
	if got := c.TotalPages(); got != 3 {
		t.Fatalf("30 items at size 10 should give 3 pages, got %d", got)
	}

	c.ReportTotal(31)
	if got := c.TotalPages(); got != 4 {
		t.Fatalf("31 items at size 10 should give 4 pages, got %d", got)
	}

	c.ReportTotal(-1)
	if got := c.Total(); got != 31 {
		t.Fatalf("negative totals must be ignored, got %d", got)
	}
}

func TestController_OffsetTracksPage(t *testing.T) {
	c := NewController(25)
	if got := c.Offset(); got != 0 {
		t.Fatalf("page 1 offset = %d, want 0", got)
	}
	c.SetPage(3)
	if got := c.Offset(); got != 50 {
		t.Fatalf("page 3 offset = %d, want 50", got)
	}
}

func TestController_SetPageVerbatim(t *testing.T) {
	// The controller performs no bounds validation; callers clamp from the
	// rendered page-link range.
	c := NewController(10)
	c.SetPage(99)
	if got := c.Page(); got != 99 {
		t.Fatalf("page = %d, want 99", got)
	}

	gen := c.Generation()
	c.SetPage(99)
	if c.Generation() != gen {
		t.Fatalf("setting the current page again must not advance the generation")
	}
}

func TestController_SetPageSize(t *testing.T) {
	c := NewController(10)
	c.SetPage(4)

	c.SetPageSize(0)
	if c.PageSize() != 10 || c.Page() != 4 {
		t.Fatalf("non-positive size must be ignored: size=%d page=%d", c.PageSize(), c.Page())
	}
	c.SetPageSize(10)
	if c.Page() != 4 {
		t.Fatalf("unchanged size must be a no-op, page=%d", c.Page())
	}

	c.SetPageSize(20)
	if c.PageSize() != 20 || c.Page() != 1 {
		t.Fatalf("size change must land on page 1: size=%d page=%d", c.PageSize(), c.Page())
	}
}

func TestController_ToggleSortCycle(t *testing.T) {
	c := NewController(10)

	c.ToggleSort("name")
	if f, d, ok := c.Sort(); !ok || f != "name" || d != SortAscending {
		t.Fatalf("first toggle: %q %q %v", f, d, ok)
	}

	c.ToggleSort("name")
	if _, d, _ := c.Sort(); d != SortDescending {
		t.Fatalf("second toggle on same field should flip to descending, got %q", d)
	}

	c.ToggleSort("name")
	if _, d, _ := c.Sort(); d != SortAscending {
		t.Fatalf("third toggle should return to ascending, got %q", d)
	}

	c.ToggleSort("name")
	c.ToggleSort("price")
	if f, d, _ := c.Sort(); f != "price" || d != SortAscending {
		t.Fatalf("new field always starts ascending, got %q %q", f, d)
	}
}

func TestController_SortAndFiltersResetPage(t *testing.T) {
	c := NewController(10)

	c.SetPage(5)
	c.ToggleSort("name")
	if c.Page() != 1 {
		t.Fatalf("toggle sort must reset to page 1, got %d", c.Page())
	}

	c.SetPage(5)
	c.ApplyFilters(Filters{"status": "approved"})
	if c.Page() != 1 {
		t.Fatalf("apply filters must reset to page 1, got %d", c.Page())
	}

	c.SetPage(5)
	c.ResetFilters()
	if c.Page() != 1 {
		t.Fatalf("reset filters must reset to page 1, got %d", c.Page())
	}
}

func TestController_SetSort(t *testing.T) {
	c := NewController(10)

	c.SetPage(4)
	c.SetSort("price", SortDescending)
	if c.Page() != 1 {
		t.Fatalf("set sort must reset to page 1, got %d", c.Page())
	}
	if field, dir, ok := c.Sort(); !ok || field != "price" || dir != SortDescending {
		t.Fatalf("sort = %q %q %v", field, dir, ok)
	}

	gen := c.Generation()
	c.SetPage(3)
	c.SetSort("price", SortDescending)
	if c.Page() != 3 || c.Generation() != gen+1 {
		t.Fatalf("setting the active sort must change nothing: page=%d", c.Page())
	}

	c.SetSort("name", SortDirection("sideways"))
	if _, dir, _ := c.Sort(); dir != SortAscending {
		t.Fatalf("unknown direction must fall back to ascending, got %q", dir)
	}
}

func TestController_ApplyFiltersPrunesEmptyValues(t *testing.T) {
	c := NewController(10)
	c.ApplyFilters(Filters{"status": "approved", "post_id": "", "author": nil})

	got := c.ActiveFilters()
	if len(got) != 1 || got["status"] != "approved" {
		t.Fatalf("empty and nil values must be dropped, got %#v", got)
	}
}

func TestController_ApplyFiltersIdempotent(t *testing.T) {
	c := NewController(10)
	c.ApplyFilters(Filters{"status": "approved"})
	c.SetPage(3)
	gen := c.Generation()

	c.ApplyFilters(Filters{"status": "approved", "post_id": ""})
	if c.Page() != 3 {
		t.Fatalf("re-applying equal filters must not reset the page, got %d", c.Page())
	}
	if c.Generation() != gen {
		t.Fatalf("re-applying equal filters must not advance the generation")
	}
}

func TestController_ResetFiltersNoopWhenEmpty(t *testing.T) {
	c := NewController(10)
	c.SetPage(2)
	gen := c.Generation()
	c.ResetFilters()
	if c.Page() != 2 || c.Generation() != gen {
		t.Fatalf("reset on empty filters must change nothing: page=%d", c.Page())
	}
}

func TestController_ParamsSnapshot(t *testing.T) {
	c := NewController(10)
	c.ApplyFilters(Filters{"category": "tees"})
	c.ToggleSort("price")
	c.SetPage(2)

	p := c.Params()
	if p.Limit != 10 || p.Offset != 10 {
		t.Fatalf("snapshot limit/offset = %d/%d", p.Limit, p.Offset)
	}
	if p.SortField != "price" || p.SortDirection != SortAscending {
		t.Fatalf("snapshot sort = %q %q", p.SortField, p.SortDirection)
	}
	if p.Generation != c.Generation() {
		t.Fatalf("snapshot generation must match controller")
	}

	// Mutating the snapshot's filters must not leak into the controller.
	p.Filters["category"] = "hats"
	if c.ActiveFilters()["category"] != "tees" {
		t.Fatalf("params filters must be a copy")
	}
}
