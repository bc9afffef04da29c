package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/storage/memory"
	"github.com/noizee/storefront/internal/app/validation"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, nil), store
}

func placeOrder(t *testing.T, store *memory.Store) order.Order {
	t.Helper()
	o, err := store.PlaceOrder(context.Background(), order.Order{
		CustomerID: "1",
		Lines:      []order.Line{{ProductID: "p1", ProductName: "Hoodie", Quantity: 1, UnitPrice: 59}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	return o
}

func TestUpdateStatusFollowsTransitions(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	o := placeOrder(t, store)

	updated, err := s.UpdateStatus(ctx, o.ID, order.StatusConfirmed)
	if err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}
	if updated.Status != order.StatusConfirmed {
		t.Fatalf("status = %q", updated.Status)
	}

	if _, err := s.UpdateStatus(ctx, o.ID, order.StatusDelivered); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("confirmed -> delivered must be rejected, got %v", err)
	}
	if _, err := s.UpdateStatus(ctx, o.ID, "bogus"); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}

	if _, err := s.UpdateStatus(ctx, o.ID, order.StatusShipped); err != nil {
		t.Fatalf("confirmed -> shipped: %v", err)
	}
	if _, err := s.UpdateStatus(ctx, o.ID, order.StatusDelivered); err != nil {
		t.Fatalf("shipped -> delivered: %v", err)
	}
	if _, err := s.UpdateStatus(ctx, o.ID, order.StatusCancelled); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("delivered is terminal, got %v", err)
	}
}

func TestStatusChangeLeavesFilteredList(t *testing.T) {
	s, store := newService(t)
	ctx := context.Background()
	o := placeOrder(t, store)
	placeOrder(t, store)

	s.List().ApplyFilters(map[string]interface{}{"status": order.StatusPending})
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := len(s.Items()); got != 2 {
		t.Fatalf("pending orders = %d, want 2", got)
	}

	if _, err := s.UpdateStatus(ctx, o.ID, order.StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got := len(s.Items()); got != 1 {
		t.Fatalf("confirmed order should leave the pending list: len=%d", got)
	}
}

func TestPlaceValidatesLines(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	if _, err := s.Place(ctx, order.Order{}); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("empty order: got %v", err)
	}
	if _, err := s.Place(ctx, order.Order{Lines: []order.Line{{ProductID: "p", Quantity: 0}}}); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("zero quantity line: got %v", err)
	}

	placed, err := s.Place(ctx, order.Order{
		CustomerID: "1",
		Lines:      []order.Line{{ProductID: "p", Quantity: 2, UnitPrice: 10}},
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.Total != 20 {
		t.Fatalf("total = %v, want 20", placed.Total)
	}
	if got := s.List().Page(); got != 1 {
		t.Fatalf("list must return to page 1 after place")
	}
}
