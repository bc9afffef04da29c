package listquery

import (
	"context"
	"sync"

	"github.com/noizee/storefront/pkg/logger"
)

// Page is one fetched page of a list query. Count is the total matching item
// count reported by the server, not the length of Items.
type Page[T any] struct {
	Items []T
	Count int
}

// FetchFunc executes a list query with the given parameter snapshot.
type FetchFunc[T any] func(ctx context.Context, p Params) (Page[T], error)

// Binding couples a Controller with the fetch that feeds it and keeps the two
// consistent across pagination, filtering and mutations. It implements the
// synchronization rules every list screen follows:
//
//   - a refresh fetches with the controller's current parameter snapshot and
//     writes the server-reported count back through ReportTotal;
//   - responses whose generation no longer matches the controller are
//     discarded, so a stale fetch can never clobber newer state;
//   - a failed fetch leaves the last good page and total visible;
//   - deleting the only item of a page beyond the first steps back one page.
type Binding[T any] struct {
	ctrl  *Controller
	fetch FetchFunc[T]
	log   *logger.Logger

	mu    sync.Mutex
	items []T
}

// NewBinding wires a controller to its fetch function.
func NewBinding[T any](ctrl *Controller, fetch FetchFunc[T], log *logger.Logger) *Binding[T] {
	if log == nil {
		log = logger.NewDefault("listquery")
	}
	return &Binding[T]{ctrl: ctrl, fetch: fetch, log: log}
}

// Controller returns the bound controller.
func (b *Binding[T]) Controller() *Controller { return b.ctrl }

// Items returns the last successfully fetched page.
func (b *Binding[T]) Items() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Refresh fetches the current page. On error the previous items and total
// stay in place and the error is returned for the caller to surface. A
// response that raced with a newer state change is dropped without effect.
func (b *Binding[T]) Refresh(ctx context.Context) error {
	p := b.ctrl.Params()

	page, err := b.fetch(ctx, p)
	if err != nil {
		b.log.WithError(err).Warn("list fetch failed, keeping last good page")
		return err
	}

	if p.Generation != b.ctrl.Generation() {
		b.log.WithField("generation", p.Generation).Debug("discarding stale list response")
		return nil
	}

	b.ctrl.ReportTotal(page.Count)
	b.mu.Lock()
	b.items = page.Items
	b.mu.Unlock()
	return nil
}

// ItemDeleted re-synchronizes after a delete mutation. When the deleted item
// was the only one on a page beyond the first, the controller steps back a
// page before re-fetching.
func (b *Binding[T]) ItemDeleted(ctx context.Context) error {
	b.mu.Lock()
	lastOnPage := len(b.items) == 1
	b.mu.Unlock()

	if page := b.ctrl.Page(); lastOnPage && page > 1 {
		b.ctrl.SetPage(page - 1)
	}
	return b.Refresh(ctx)
}

// ItemCreated re-synchronizes after a create mutation by returning to the
// first page, where the new item is visible under default ordering.
func (b *Binding[T]) ItemCreated(ctx context.Context) error {
	b.ctrl.SetPage(1)
	return b.Refresh(ctx)
}

// ItemUpdated re-synchronizes after an update mutation. When the update may
// have changed the item's membership in the current filter or sort (for
// example a status change while filtered by status) the page is re-fetched;
// otherwise replace patches the cached page in place and no fetch is issued.
func (b *Binding[T]) ItemUpdated(ctx context.Context, membershipChanged bool, match func(T) bool, updated T) error {
	if membershipChanged {
		return b.Refresh(ctx)
	}
	if match == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if match(b.items[i]) {
			b.items[i] = updated
		}
	}
	return nil
}
