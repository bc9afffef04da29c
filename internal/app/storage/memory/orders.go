package memory

import (
	"context"
	"time"

	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

func (s *Store) PlaceOrder(_ context.Context, o order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextIDLocked()
	now := time.Now().UTC()
	if o.PlacedAt.IsZero() {
		o.PlacedAt = now
	}
	o.UpdatedAt = now
	if o.Status == "" {
		o.Status = order.StatusPending
	}
	if o.Total == 0 {
		for _, line := range o.Lines {
			o.Total += line.UnitPrice * float64(line.Quantity)
		}
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *Store) GetOrder(_ context.Context, id string) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, storage.ErrNotFound
	}
	return o, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id, status string) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return order.Order{}, storage.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return o, nil
}

func (s *Store) ListOrders(_ context.Context, p listquery.Params) ([]order.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if v, ok := stringFilter(p.Filters, "status"); ok && o.Status != v {
			continue
		}
		if v, ok := stringFilter(p.Filters, "customer_id"); ok && o.CustomerID != v {
			continue
		}
		matched = append(matched, o)
	}
	applySort(matched, p, func(a, b order.Order, field string) (bool, bool) {
		switch field {
		case "placed_at":
			return a.PlacedAt.Before(b.PlacedAt), true
		case "total":
			return a.Total < b.Total, true
		case "status":
			return a.Status < b.Status, true
		}
		return false, false
	}, func(a, b order.Order) bool {
		return orderless(a.PlacedAt, b.PlacedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}
