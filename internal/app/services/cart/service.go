// Package cart is the visitor's shopping cart aggregate. Lines are keyed by
// the (product, color, size) triple; adding an existing triple merges
// quantities. The cart survives restarts through the local store and the
// add-to-cart panel state rides along with it.
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/noizee/storefront/internal/app/domain/cart"
	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/localstore"
	"github.com/noizee/storefront/pkg/logger"
)

// storageKey is the local store key holding the serialized cart.
const storageKey = "cart"

// Service holds the cart state. All methods are safe for concurrent use.
type Service struct {
	store localstore.Store
	log   *logger.Logger

	mu      sync.Mutex
	entries []cart.Entry
	open    bool
}

// NewService creates an empty cart backed by the given store.
func NewService(store localstore.Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("cart")
	}
	return &Service{store: store, log: log}
}

// Load rehydrates the cart from the local store. A missing key or an
// unreadable store yields an empty cart; a corrupt payload is discarded
// with a warning. Store problems are logged, never surfaced.
func (s *Service) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, storageKey)
	if err != nil {
		s.log.WithError(err).Warn("reading persisted cart failed, starting empty")
		return nil
	}
	if !ok {
		return nil
	}
	var entries []cart.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.log.WithError(err).Warn("discarding unreadable persisted cart")
		if err := s.store.Delete(ctx, storageKey); err != nil {
			s.log.WithError(err).Warn("scrubbing persisted cart failed")
		}
		return nil
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Add puts a line into the cart. The quantity floor is one, an existing
// (product, color, size) line absorbs the added quantity, and the cart panel
// opens so the visitor sees the result. Products sold in variants must name
// a color and a size with stock.
func (s *Service) Add(ctx context.Context, product catalog.Product, colorID, sizeID string, quantity int) error {
	if product.ID == "" {
		return validation.Errorf("product is required")
	}
	if product.RequiresVariant() {
		if colorID == "" || sizeID == "" {
			return validation.Errorf("product %s requires a color and size selection", product.ID)
		}
		if !product.VariantInStock(colorID, sizeID) {
			return validation.Errorf("selected variant of product %s is out of stock", product.ID)
		}
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	key := cart.EntryKey(product.ID, colorID, sizeID)
	merged := false
	for i := range s.entries {
		if s.entries[i].Key() == key {
			s.entries[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.entries = append(s.entries, cart.Entry{
			ProductID:   product.ID,
			ColorID:     colorID,
			SizeID:      sizeID,
			Quantity:    quantity,
			UnitPrice:   product.BasePrice,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			AddedAt:     time.Now().UTC(),
		})
	}
	s.open = true
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// SetQuantity changes a line's quantity. Values below one clamp to one;
// removal is only ever explicit through Remove. An unknown line is a silent
// no-op.
func (s *Service) SetQuantity(ctx context.Context, productID, colorID, sizeID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	key := cart.EntryKey(productID, colorID, sizeID)
	changed := false
	for i := range s.entries {
		if s.entries[i].Key() == key {
			if s.entries[i].Quantity != quantity {
				s.entries[i].Quantity = quantity
				changed = true
			}
			break
		}
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	s.persist(ctx)
	return nil
}

// Remove deletes a line. Removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, productID, colorID, sizeID string) error {
	s.mu.Lock()
	key := cart.EntryKey(productID, colorID, sizeID)
	kept := s.entries[:0]
	removed := false
	for _, e := range s.entries {
		if e.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.mu.Unlock()

	if !removed {
		return nil
	}
	s.persist(ctx)
	return nil
}

// Clear empties the cart, typically after a successful checkout.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.open = false
	s.mu.Unlock()
	if err := s.store.Delete(ctx, storageKey); err != nil {
		s.log.WithError(err).Warn("scrubbing persisted cart failed")
	}
	return nil
}

// Entries returns a copy of the cart lines in insertion order.
func (s *Service) Entries() []cart.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cart.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Subtotal sums the line totals.
func (s *Service) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, e := range s.entries {
		total += e.LineTotal()
	}
	return total
}

// ItemCount is the total quantity across lines, the number shown on the
// cart badge.
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.entries {
		count += e.Quantity
	}
	return count
}

// IsOpen reports whether the cart panel is showing.
func (s *Service) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// OpenPanel shows the cart panel.
func (s *Service) OpenPanel() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// ClosePanel hides the cart panel.
func (s *Service) ClosePanel() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// persist writes the cart through to the local store. Write failures are
// logged and swallowed; the in-memory cart is authoritative for the session.
func (s *Service) persist(ctx context.Context) {
	s.mu.Lock()
	raw, err := json.Marshal(s.entries)
	s.mu.Unlock()
	if err != nil {
		s.log.WithError(err).Warn("serializing cart failed")
		return
	}
	if err := s.store.Put(ctx, storageKey, raw); err != nil {
		s.log.WithError(err).Warn("persisting cart failed")
	}
}
