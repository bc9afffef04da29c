// Package products is the admin-facing product service: it owns the product
// list state and keeps it synchronized across create, update and delete.
package products

import (
	"context"
	"strings"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/pkg/logger"
)

// Service wraps the product store behind list-state management.
type Service struct {
	store   storage.ProductStore
	log     *logger.Logger
	binding *listquery.Binding[catalog.Product]
}

// NewService creates the product service with a fresh list controller.
func NewService(store storage.ProductStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("products")
	}
	s := &Service{store: store, log: log}
	ctrl := listquery.NewController(listquery.DefaultPageSize)
	s.binding = listquery.NewBinding(ctrl, s.fetch, log)
	return s
}

func (s *Service) fetch(ctx context.Context, p listquery.Params) (listquery.Page[catalog.Product], error) {
	items, count, err := s.store.ListProducts(ctx, p)
	if err != nil {
		return listquery.Page[catalog.Product]{}, err
	}
	return listquery.Page[catalog.Product]{Items: items, Count: count}, nil
}

// List returns the controller driving the product list.
func (s *Service) List() *listquery.Controller { return s.binding.Controller() }

// Items returns the current page.
func (s *Service) Items() []catalog.Product { return s.binding.Items() }

// Refresh re-fetches the current page.
func (s *Service) Refresh(ctx context.Context) error { return s.binding.Refresh(ctx) }

// Get loads a single product.
func (s *Service) Get(ctx context.Context, id string) (catalog.Product, error) {
	if id == "" {
		return catalog.Product{}, validation.Errorf("product id is required")
	}
	return s.store.GetProduct(ctx, id)
}

// Create validates and stores a new product, then returns the list to the
// first page so the new item is visible.
func (s *Service) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if err := validate(p); err != nil {
		return catalog.Product{}, err
	}
	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return catalog.Product{}, err
	}
	s.log.WithField("product_id", created.ID).Info("product created")
	if err := s.binding.ItemCreated(ctx); err != nil {
		s.log.WithError(err).Warn("product list refresh after create failed")
	}
	return created, nil
}

// Update validates and stores changes to an existing product. When the
// product still satisfies the active filters the visible page is patched in
// place; otherwise the page is re-fetched because membership changed.
func (s *Service) Update(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		return catalog.Product{}, validation.Errorf("product id is required")
	}
	if err := validate(p); err != nil {
		return catalog.Product{}, err
	}
	updated, err := s.store.UpdateProduct(ctx, p)
	if err != nil {
		return catalog.Product{}, err
	}
	s.log.WithField("product_id", updated.ID).Info("product updated")
	s.resync(ctx, updated)
	return updated, nil
}

// Delete removes a product and steps the list back a page when it held the
// page's only item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return validation.Errorf("product id is required")
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.WithField("product_id", id).Info("product deleted")
	if err := s.binding.ItemDeleted(ctx); err != nil {
		s.log.WithError(err).Warn("product list refresh after delete failed")
	}
	return nil
}

// SetInventory replaces a product's variant stock levels. Stock is not a
// list filter, so the visible page is patched in place.
func (s *Service) SetInventory(ctx context.Context, productID string, levels []catalog.InventoryLevel) (catalog.Product, error) {
	if productID == "" {
		return catalog.Product{}, validation.Errorf("product id is required")
	}
	for _, l := range levels {
		if l.Quantity < 0 {
			return catalog.Product{}, validation.Errorf("inventory quantity must not be negative")
		}
	}
	updated, err := s.store.SetInventory(ctx, productID, levels)
	if err != nil {
		return catalog.Product{}, err
	}
	s.patch(ctx, updated)
	return updated, nil
}

func (s *Service) resync(ctx context.Context, updated catalog.Product) {
	filters := s.binding.Controller().ActiveFilters()
	if len(filters) > 0 && !matchesFilters(updated, filters) {
		if err := s.binding.ItemUpdated(ctx, true, nil, updated); err != nil {
			s.log.WithError(err).Warn("product list refresh after update failed")
		}
		return
	}
	s.patch(ctx, updated)
}

func (s *Service) patch(ctx context.Context, updated catalog.Product) {
	_ = s.binding.ItemUpdated(ctx, false, func(p catalog.Product) bool { return p.ID == updated.ID }, updated)
}

func validate(p catalog.Product) error {
	if p.Name == "" {
		return validation.Errorf("product name is required")
	}
	if p.BasePrice < 0 {
		return validation.Errorf("product price must not be negative")
	}
	return nil
}

// matchesFilters mirrors the backend's product filter semantics so the
// service can tell whether an update changed list membership.
func matchesFilters(p catalog.Product, f listquery.Filters) bool {
	if v, ok := f["category_id"].(string); ok && v != "" && p.CategoryID != v {
		return false
	}
	if v, ok := f["is_published"].(bool); ok && p.IsPublished != v {
		return false
	}
	if v, ok := f["is_new"].(bool); ok && p.IsNew != v {
		return false
	}
	if v, ok := f["q"].(string); ok && v != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(v)) {
		return false
	}
	if v, ok := f["collection_id"].(string); ok && v != "" {
		found := false
		for _, id := range p.CollectionIDs {
			if id == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
