package listquery

import (
	"context"
	"errors"
	"testing"
)

type fakeItem struct {
	ID   string
	Name string
}

// pagedFetch serves slices of a fixed dataset and records the parameters of
// every call.
type pagedFetch struct {
	data  []fakeItem
	calls []Params
	fail  bool
}

func (f *pagedFetch) fetch(_ context.Context, p Params) (Page[fakeItem], error) {
	f.calls = append(f.calls, p)
	if f.fail {
		return Page[fakeItem]{}, errors.New("upstream unavailable")
	}
	start := p.Offset
	if start > len(f.data) {
		start = len(f.data)
	}
	end := start + p.Limit
	if end > len(f.data) {
		end = len(f.data)
	}
	return Page[fakeItem]{Items: f.data[start:end], Count: len(f.data)}, nil
}

func dataset(n int) []fakeItem {
	items := make([]fakeItem, n)
	for i := range items {
		items[i] = fakeItem{ID: string(rune('a' + i)), Name: "item"}
	}
	return items
}

func TestBinding_RefreshReportsServerCount(t *testing.T) {
	src := &pagedFetch{data: dataset(23)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := ctrl.Total(); got != 23 {
		t.Fatalf("total = %d, want server count 23", got)
	}
	if got := len(b.Items()); got != 10 {
		t.Fatalf("page length = %d, want 10", got)
	}
	if ctrl.TotalPages() != 3 {
		t.Fatalf("total pages = %d, want 3", ctrl.TotalPages())
	}
}

func TestBinding_FetchFailureKeepsLastGoodPage(t *testing.T) {
	src := &pagedFetch{data: dataset(5)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	src.fail = true
	if err := b.Refresh(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if got := len(b.Items()); got != 5 {
		t.Fatalf("failed fetch must keep last good items, got %d", got)
	}
	if got := ctrl.Total(); got != 5 {
		t.Fatalf("failed fetch must keep last good total, got %d", got)
	}
}

func TestBinding_StaleResponseDiscarded(t *testing.T) {
	ctrl := NewController(10)
	fetched := false
	fetch := func(_ context.Context, p Params) (Page[fakeItem], error) {
		fetched = true
		// Simulate a fast follow-up user action racing the in-flight fetch.
		ctrl.ApplyFilters(Filters{"status": "approved"})
		return Page[fakeItem]{Items: dataset(3), Count: 99}, nil
	}

	b := NewBinding[fakeItem](ctrl, fetch, nil)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !fetched {
		t.Fatalf("fetch was not invoked")
	}
	if got := ctrl.Total(); got != 0 {
		t.Fatalf("stale response must not report its count, total = %d", got)
	}
	if got := len(b.Items()); got != 0 {
		t.Fatalf("stale response must not install items, got %d", got)
	}
}

func TestBinding_ItemDeletedStepsBackFromEmptiedPage(t *testing.T) {
	src := &pagedFetch{data: dataset(21)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	ctrl.SetPage(3)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := len(b.Items()); got != 1 {
		t.Fatalf("page 3 of 21 items should hold 1 item, got %d", got)
	}

	// The sole item of page 3 is deleted remotely.
	src.data = src.data[:20]
	if err := b.ItemDeleted(context.Background()); err != nil {
		t.Fatalf("item deleted: %v", err)
	}
	if got := ctrl.Page(); got != 2 {
		t.Fatalf("page = %d, want 2 after emptying page 3", got)
	}
	if got := len(b.Items()); got != 10 {
		t.Fatalf("page 2 should hold 10 items, got %d", got)
	}
}

func TestBinding_ItemDeletedStaysOnPopulatedPage(t *testing.T) {
	src := &pagedFetch{data: dataset(15)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	ctrl.SetPage(2)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	src.data = src.data[:14]
	if err := b.ItemDeleted(context.Background()); err != nil {
		t.Fatalf("item deleted: %v", err)
	}
	if got := ctrl.Page(); got != 2 {
		t.Fatalf("page = %d, want to stay on 2", got)
	}
}

func TestBinding_ItemCreatedReturnsToFirstPage(t *testing.T) {
	src := &pagedFetch{data: dataset(12)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	ctrl.SetPage(2)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	src.data = append(src.data, fakeItem{ID: "new"})
	if err := b.ItemCreated(context.Background()); err != nil {
		t.Fatalf("item created: %v", err)
	}
	if got := ctrl.Page(); got != 1 {
		t.Fatalf("page = %d, want 1 after create", got)
	}
	if got := ctrl.Total(); got != 13 {
		t.Fatalf("total = %d, want 13", got)
	}
}

func TestBinding_ItemUpdatedPatchesInPlace(t *testing.T) {
	src := &pagedFetch{data: dataset(3)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	calls := len(src.calls)

	updated := fakeItem{ID: "b", Name: "renamed"}
	err := b.ItemUpdated(context.Background(), false, func(it fakeItem) bool { return it.ID == "b" }, updated)
	if err != nil {
		t.Fatalf("item updated: %v", err)
	}
	if len(src.calls) != calls {
		t.Fatalf("in-place patch must not re-fetch")
	}
	items := b.Items()
	if items[1].Name != "renamed" {
		t.Fatalf("item not patched: %#v", items[1])
	}
}

func TestBinding_ItemUpdatedRefetchesOnMembershipChange(t *testing.T) {
	src := &pagedFetch{data: dataset(3)}
	ctrl := NewController(10)
	b := NewBinding[fakeItem](ctrl, src.fetch, nil)

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	calls := len(src.calls)

	if err := b.ItemUpdated(context.Background(), true, nil, fakeItem{}); err != nil {
		t.Fatalf("item updated: %v", err)
	}
	if len(src.calls) != calls+1 {
		t.Fatalf("membership change must force a re-fetch")
	}
}
