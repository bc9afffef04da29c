// Package customers is the read-only admin service for shop accounts.
package customers

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/pkg/logger"
)

// Service wraps the customer store behind list-state management.
type Service struct {
	store   storage.CustomerStore
	log     *logger.Logger
	binding *listquery.Binding[customer.Customer]
}

// NewService creates the customer service.
func NewService(store storage.CustomerStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("customers")
	}
	s := &Service{store: store, log: log}
	ctrl := listquery.NewController(listquery.DefaultPageSize)
	s.binding = listquery.NewBinding(ctrl, func(ctx context.Context, p listquery.Params) (listquery.Page[customer.Customer], error) {
		items, count, err := store.ListCustomers(ctx, p)
		if err != nil {
			return listquery.Page[customer.Customer]{}, err
		}
		return listquery.Page[customer.Customer]{Items: items, Count: count}, nil
	}, log)
	return s
}

// List returns the controller driving the customer list.
func (s *Service) List() *listquery.Controller { return s.binding.Controller() }

// Items returns the current page.
func (s *Service) Items() []customer.Customer { return s.binding.Items() }

// Refresh re-fetches the current page.
func (s *Service) Refresh(ctx context.Context) error { return s.binding.Refresh(ctx) }

// Get loads a single customer.
func (s *Service) Get(ctx context.Context, id string) (customer.Customer, error) {
	if id == "" {
		return customer.Customer{}, validation.Errorf("customer id is required")
	}
	return s.store.GetCustomer(ctx, id)
}
