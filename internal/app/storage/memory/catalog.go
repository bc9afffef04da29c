package memory

import (
	"context"
	"time"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

// --- products ---------------------------------------------------------------

func (s *Store) CreateProduct(_ context.Context, p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextIDLocked()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) UpdateProduct(_ context.Context, p catalog.Product) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[p.ID]
	if !ok {
		return catalog.Product{}, storage.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) SetInventory(_ context.Context, productID string, levels []catalog.InventoryLevel) (catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return catalog.Product{}, storage.ErrNotFound
	}
	p.Inventory = append([]catalog.InventoryLevel(nil), levels...)
	p.UpdatedAt = time.Now().UTC()
	s.products[productID] = p
	return p, nil
}

func (s *Store) ListProducts(_ context.Context, p listquery.Params) ([]catalog.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]catalog.Product, 0, len(s.products))
	for _, prod := range s.products {
		if !matchProduct(prod, p.Filters) {
			continue
		}
		matched = append(matched, prod)
	}
	applySort(matched, p, func(a, b catalog.Product, field string) (bool, bool) {
		switch field {
		case "name":
			return a.Name < b.Name, true
		case "base_price":
			return a.BasePrice < b.BasePrice, true
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt), true
		}
		return false, false
	}, func(a, b catalog.Product) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

func matchProduct(prod catalog.Product, f listquery.Filters) bool {
	if v, ok := stringFilter(f, "category_id"); ok && prod.CategoryID != v {
		return false
	}
	if v, ok := boolFilter(f, "is_published"); ok && prod.IsPublished != v {
		return false
	}
	if v, ok := boolFilter(f, "is_new"); ok && prod.IsNew != v {
		return false
	}
	if v, ok := stringFilter(f, "q"); ok && !containsFold(prod.Name, v) {
		return false
	}
	if v, ok := stringFilter(f, "collection_id"); ok {
		found := false
		for _, id := range prod.CollectionIDs {
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

// --- categories -------------------------------------------------------------

func (s *Store) CreateCategory(_ context.Context, c catalog.Category) (catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, c catalog.Category) (catalog.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[c.ID]
	if !ok {
		return catalog.Category{}, storage.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context, p listquery.Params) ([]catalog.Category, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]catalog.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if v, ok := stringFilter(p.Filters, "q"); ok && !containsFold(c.Name, v) {
			continue
		}
		matched = append(matched, c)
	}
	applySort(matched, p, func(a, b catalog.Category, field string) (bool, bool) {
		if field == "name" {
			return a.Name < b.Name, true
		}
		return false, false
	}, func(a, b catalog.Category) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

// --- colors -----------------------------------------------------------------

func (s *Store) CreateColor(_ context.Context, c catalog.Color) (catalog.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.colors[c.ID] = c
	return c, nil
}

func (s *Store) UpdateColor(_ context.Context, c catalog.Color) (catalog.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.colors[c.ID]
	if !ok {
		return catalog.Color{}, storage.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.colors[c.ID] = c
	return c, nil
}

func (s *Store) DeleteColor(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.colors[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.colors, id)
	return nil
}

func (s *Store) ListColors(_ context.Context, p listquery.Params) ([]catalog.Color, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]catalog.Color, 0, len(s.colors))
	for _, c := range s.colors {
		if v, ok := stringFilter(p.Filters, "q"); ok && !containsFold(c.Name, v) {
			continue
		}
		matched = append(matched, c)
	}
	applySort(matched, p, func(a, b catalog.Color, field string) (bool, bool) {
		if field == "name" {
			return a.Name < b.Name, true
		}
		return false, false
	}, func(a, b catalog.Color) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

// --- sizes ------------------------------------------------------------------

func (s *Store) CreateSize(_ context.Context, sz catalog.Size) (catalog.Size, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sz.ID = s.nextIDLocked()
	now := time.Now().UTC()
	sz.CreatedAt = now
	sz.UpdatedAt = now
	s.sizes[sz.ID] = sz
	return sz, nil
}

func (s *Store) UpdateSize(_ context.Context, sz catalog.Size) (catalog.Size, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.sizes[sz.ID]
	if !ok {
		return catalog.Size{}, storage.ErrNotFound
	}
	sz.CreatedAt = existing.CreatedAt
	sz.UpdatedAt = time.Now().UTC()
	s.sizes[sz.ID] = sz
	return sz, nil
}

func (s *Store) DeleteSize(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sizes[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.sizes, id)
	return nil
}

func (s *Store) ListSizes(_ context.Context, p listquery.Params) ([]catalog.Size, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]catalog.Size, 0, len(s.sizes))
	for _, sz := range s.sizes {
		if v, ok := stringFilter(p.Filters, "q"); ok && !containsFold(sz.Name, v) {
			continue
		}
		matched = append(matched, sz)
	}
	applySort(matched, p, func(a, b catalog.Size, field string) (bool, bool) {
		switch field {
		case "name":
			return a.Name < b.Name, true
		case "sort_order":
			return a.SortOrder < b.SortOrder, true
		}
		return false, false
	}, func(a, b catalog.Size) bool {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

// --- collections ------------------------------------------------------------

func (s *Store) CreateCollection(_ context.Context, c catalog.Collection) (catalog.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextIDLocked()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	s.collections[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCollection(_ context.Context, c catalog.Collection) (catalog.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.collections[c.ID]
	if !ok {
		return catalog.Collection{}, storage.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.collections[c.ID] = c
	return c, nil
}

func (s *Store) DeleteCollection(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.collections, id)
	return nil
}

func (s *Store) ListCollections(_ context.Context, p listquery.Params) ([]catalog.Collection, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]catalog.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		if v, ok := stringFilter(p.Filters, "q"); ok && !containsFold(c.Name, v) {
			continue
		}
		matched = append(matched, c)
	}
	applySort(matched, p, func(a, b catalog.Collection, field string) (bool, bool) {
		if field == "name" {
			return a.Name < b.Name, true
		}
		return false, false
	}, func(a, b catalog.Collection) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}
