package app

import (
	"context"
	"fmt"

	"github.com/noizee/storefront/internal/app/services/auth"
	"github.com/noizee/storefront/internal/app/services/cart"
	"github.com/noizee/storefront/internal/app/services/customers"
	"github.com/noizee/storefront/internal/app/services/orders"
	"github.com/noizee/storefront/internal/app/services/posts"
	"github.com/noizee/storefront/internal/app/services/prefs"
	"github.com/noizee/storefront/internal/app/services/products"
	"github.com/noizee/storefront/internal/app/services/taxonomy"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/storage/memory"
	"github.com/noizee/storefront/internal/app/system"
	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/localstore"
	"github.com/noizee/storefront/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation, which also acts as the authenticator.
type Stores struct {
	Products  storage.ProductStore
	Taxonomy  storage.TaxonomyStore
	Blog      storage.BlogStore
	Orders    storage.OrderStore
	Customers storage.CustomerStore
	Auth      storage.Authenticator
}

// Options carries the optional infrastructure the application can run
// without: the durable local store (defaults to in-memory), the entity
// cache and the backend change feed.
type Options struct {
	Local         localstore.Store
	Cache         *entitycache.Cache
	Subscriber    *gqlclient.Subscriber
	SweepSchedule string
}

// Application ties the shop services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Products  *products.Service
	Taxonomy  *taxonomy.Service
	Posts     *posts.Service
	Orders    *orders.Service
	Customers *customers.Service
	Cart      *cart.Service
	Auth      *auth.Service
	Prefs     *prefs.Service

	Cache *entitycache.Cache
	Local localstore.Store
}

// New builds a fully initialised application.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Products == nil {
		stores.Products = mem
	}
	if stores.Taxonomy == nil {
		stores.Taxonomy = mem
	}
	if stores.Blog == nil {
		stores.Blog = mem
	}
	if stores.Orders == nil {
		stores.Orders = mem
	}
	if stores.Customers == nil {
		stores.Customers = mem
	}
	if stores.Auth == nil {
		stores.Auth = mem
	}

	local := opts.Local
	if local == nil {
		local = localstore.NewMemory()
	}
	cache := opts.Cache
	if cache == nil {
		cache = entitycache.New(entitycache.Config{Name: "entities"})
	}

	manager := system.NewManager()

	cartService := cart.NewService(local, log)
	authService := auth.NewService(stores.Auth, local, log, cache)

	a := &Application{
		manager:   manager,
		log:       log,
		Products:  products.NewService(stores.Products, log),
		Taxonomy:  taxonomy.NewService(stores.Taxonomy, log),
		Posts:     posts.NewService(stores.Blog, log),
		Orders:    orders.NewService(stores.Orders, log),
		Customers: customers.NewService(stores.Customers, log),
		Cart:      cartService,
		Auth:      authService,
		Prefs:     prefs.NewService(local, log),
		Cache:     cache,
		Local:     local,
	}

	if err := manager.Register(NewCacheJanitor(cache, opts.SweepSchedule, a.Products.Refresh, log)); err != nil {
		return nil, fmt.Errorf("register cache janitor: %w", err)
	}
	if opts.Subscriber != nil {
		if err := manager.Register(NewInvalidator(opts.Subscriber, cache, log)); err != nil {
			return nil, fmt.Errorf("register invalidator: %w", err)
		}
	}

	return a, nil
}

// Attach registers an additional lifecycle-managed service. Call before
// Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start rehydrates persisted state and begins the registered services.
// Rehydration trouble degrades to empty state and never blocks startup.
func (a *Application) Start(ctx context.Context) error {
	if err := a.Auth.Load(ctx); err != nil {
		a.log.WithError(err).Warn("session restore failed")
	}
	if err := a.Cart.Load(ctx); err != nil {
		a.log.WithError(err).Warn("cart restore failed")
	}
	if err := a.Prefs.Load(ctx); err != nil {
		a.log.WithError(err).Warn("preference restore failed")
	}
	return a.manager.Start(ctx)
}

// Stop stops all services and closes the local store.
func (a *Application) Stop(ctx context.Context) error {
	err := a.manager.Stop(ctx)
	if closeErr := a.Local.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
