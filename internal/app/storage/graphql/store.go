// Package graphql implements the storage interfaces against the shop's
// GraphQL backend. Every read funnels through the normalized entity cache:
// list pages cache member keys plus the server-reported count, single reads
// are served from the cache when fresh, and mutations merge or invalidate
// the affected kind so no caller ever observes a stale mix.
package graphql

import (
	"encoding/json"
	"errors"

	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/pkg/logger"
)

// Entity kind tags used as cache namespaces.
const (
	kindProduct    = "Product"
	kindCategory   = "Category"
	kindColor      = "Color"
	kindSize       = "Size"
	kindCollection = "Collection"
	kindPost       = "Post"
	kindTag        = "Tag"
	kindOrder      = "Order"
	kindCustomer   = "Customer"
)

// Store talks to the backend and keeps the entity cache coherent.
type Store struct {
	gql   *gqlclient.Client
	cache *entitycache.Cache
	log   *logger.Logger
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.TaxonomyStore = (*Store)(nil)
var _ storage.BlogStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)
var _ storage.CustomerStore = (*Store)(nil)
var _ storage.Authenticator = (*Store)(nil)

// New creates a backend store. A nil cache gets a default unbounded one.
func New(client *gqlclient.Client, cache *entitycache.Cache, log *logger.Logger) *Store {
	if cache == nil {
		cache = entitycache.New(entitycache.Config{Name: "backend"})
	}
	if log == nil {
		log = logger.NewDefault("storage.graphql")
	}
	return &Store{gql: client, cache: cache, log: log}
}

// Cache exposes the store's cache for lifecycle hooks (logout purge, expiry
// sweeps).
func (s *Store) Cache() *entitycache.Cache {
	return s.cache
}

// mapErr converts a GraphQL NOT_FOUND into the storage sentinel.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var respErr *gqlclient.ResponseError
	if errors.As(err, &respErr) && respErr.HasCode(gqlclient.CodeNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// fieldsOf flattens a wire DTO into a cache field map via its json tags.
func fieldsOf(v interface{}) entitycache.Fields {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var f entitycache.Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return f
}

// fromFields rebuilds a wire DTO from cached fields. A false return means the
// snapshot could not be decoded and the caller should hit the network.
func fromFields(f entitycache.Fields, out interface{}) bool {
	raw, err := json.Marshal(f)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
