// Package orders is the admin service for placed orders.
package orders

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/pkg/logger"
)

// Service wraps the order store behind list-state management and enforces
// the status transition rules.
type Service struct {
	store   storage.OrderStore
	log     *logger.Logger
	binding *listquery.Binding[order.Order]
}

// NewService creates the order service.
func NewService(store storage.OrderStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	s := &Service{store: store, log: log}
	ctrl := listquery.NewController(listquery.DefaultPageSize)
	s.binding = listquery.NewBinding(ctrl, func(ctx context.Context, p listquery.Params) (listquery.Page[order.Order], error) {
		items, count, err := store.ListOrders(ctx, p)
		if err != nil {
			return listquery.Page[order.Order]{}, err
		}
		return listquery.Page[order.Order]{Items: items, Count: count}, nil
	}, log)
	return s
}

// List returns the controller driving the order list.
func (s *Service) List() *listquery.Controller { return s.binding.Controller() }

// Items returns the current page.
func (s *Service) Items() []order.Order { return s.binding.Items() }

// Refresh re-fetches the current page.
func (s *Service) Refresh(ctx context.Context) error { return s.binding.Refresh(ctx) }

// Get loads a single order.
func (s *Service) Get(ctx context.Context, id string) (order.Order, error) {
	if id == "" {
		return order.Order{}, validation.Errorf("order id is required")
	}
	return s.store.GetOrder(ctx, id)
}

// UpdateStatus moves an order along the fulfillment state machine. Invalid
// transitions are rejected before any network call. A status change while
// the list is filtered by status changes membership, so the page is
// re-fetched; otherwise it is patched in place.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (order.Order, error) {
	if id == "" {
		return order.Order{}, validation.Errorf("order id is required")
	}
	if !order.ValidStatus(status) {
		return order.Order{}, validation.Errorf("unknown order status %q", status)
	}

	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	if !order.CanTransition(current.Status, status) {
		return order.Order{}, validation.Errorf("order cannot move from %s to %s", current.Status, status)
	}

	updated, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return order.Order{}, err
	}
	s.log.WithField("order_id", id).Infof("order moved to %s", status)

	filters := s.binding.Controller().ActiveFilters()
	if v, ok := filters["status"].(string); ok && v != "" && updated.Status != v {
		if err := s.binding.ItemUpdated(ctx, true, nil, updated); err != nil {
			s.log.WithError(err).Warn("order list refresh after status change failed")
		}
		return updated, nil
	}
	_ = s.binding.ItemUpdated(ctx, false, func(o order.Order) bool { return o.ID == updated.ID }, updated)
	return updated, nil
}

// Place submits a storefront order. The checkout flow builds the order from
// the cart; lines must be present and positive.
func (s *Service) Place(ctx context.Context, o order.Order) (order.Order, error) {
	if len(o.Lines) == 0 {
		return order.Order{}, validation.Errorf("order has no lines")
	}
	for _, l := range o.Lines {
		if l.ProductID == "" || l.Quantity < 1 {
			return order.Order{}, validation.Errorf("order line needs a product and a positive quantity")
		}
	}
	placed, err := s.store.PlaceOrder(ctx, o)
	if err != nil {
		return order.Order{}, err
	}
	s.log.WithField("order_id", placed.ID).WithField("total", placed.Total).Info("order placed")
	if err := s.binding.ItemCreated(ctx); err != nil {
		s.log.WithError(err).Warn("order list refresh after place failed")
	}
	return placed, nil
}
