// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and
// local development; list calls honor the same filter, sort and pagination
// semantics as the GraphQL backend.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

// Store holds every entity kind behind one mutex.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	products    map[string]catalog.Product
	categories  map[string]catalog.Category
	colors      map[string]catalog.Color
	sizes       map[string]catalog.Size
	collections map[string]catalog.Collection
	posts       map[string]blog.Post
	tags        map[string]blog.Tag
	orders      map[string]order.Order
	customers   map[string]customer.Customer
	credentials map[string]credential
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.TaxonomyStore = (*Store)(nil)
var _ storage.BlogStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)
var _ storage.CustomerStore = (*Store)(nil)
var _ storage.Authenticator = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:      1,
		products:    make(map[string]catalog.Product),
		categories:  make(map[string]catalog.Category),
		colors:      make(map[string]catalog.Color),
		sizes:       make(map[string]catalog.Size),
		collections: make(map[string]catalog.Collection),
		posts:       make(map[string]blog.Post),
		tags:        make(map[string]blog.Tag),
		orders:      make(map[string]order.Order),
		customers:   make(map[string]customer.Customer),
		credentials: make(map[string]credential),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// --- list plumbing ----------------------------------------------------------

// paginate applies offset/limit to an already filtered, sorted slice and
// returns the page plus the total count.
func paginate[T any](items []T, p listquery.Params) ([]T, int) {
	total := len(items)
	start := p.Offset
	if start > total {
		start = total
	}
	end := total
	if p.Limit > 0 && start+p.Limit < total {
		end = start + p.Limit
	}
	page := make([]T, end-start)
	copy(page, items[start:end])
	return page, total
}

func stringFilter(f listquery.Filters, key string) (string, bool) {
	v, ok := f[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func boolFilter(f listquery.Filters, key string) (bool, bool) {
	v, ok := f[key]
	if !ok {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		return strings.EqualFold(b, "true"), true
	}
	return false, false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// orderless compares two entities by creation time then id, the backend's
// default ordering when no sort is selected.
func orderless(aCreated, bCreated time.Time, aID, bID string) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return aID < bID
}

// applySort sorts items with less when a sort field resolves, falling back
// to the default ordering. Descending compares with the operands swapped so
// equal elements still compare unordered.
func applySort[T any](items []T, p listquery.Params, less func(a, b T, field string) (bool, bool), fallback func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if p.SortField != "" {
			a, b := items[i], items[j]
			if p.SortDirection == listquery.SortDescending {
				a, b = b, a
			}
			if result, ok := less(a, b, p.SortField); ok {
				return result
			}
		}
		return fallback(items[i], items[j])
	})
}
