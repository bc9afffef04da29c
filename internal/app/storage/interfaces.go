// Package storage defines the persistence interfaces the services depend on.
// The production implementation talks to the remote GraphQL backend; the
// in-memory implementation backs tests and local development.
package storage

import (
	"context"
	"errors"

	"github.com/noizee/storefront/internal/app/domain/blog"
	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/listquery"
)

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("storage: not found")

// List methods take the controller's parameter snapshot and return one page
// plus the total matching count as reported by the backend, never the page
// length.

// ProductStore persists products and their variant inventory.
type ProductStore interface {
	CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	UpdateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, p listquery.Params) ([]catalog.Product, int, error)
	SetInventory(ctx context.Context, productID string, levels []catalog.InventoryLevel) (catalog.Product, error)
}

// TaxonomyStore persists the catalog's auxiliary entities.
type TaxonomyStore interface {
	CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	UpdateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, p listquery.Params) ([]catalog.Category, int, error)

	CreateColor(ctx context.Context, c catalog.Color) (catalog.Color, error)
	UpdateColor(ctx context.Context, c catalog.Color) (catalog.Color, error)
	DeleteColor(ctx context.Context, id string) error
	ListColors(ctx context.Context, p listquery.Params) ([]catalog.Color, int, error)

	CreateSize(ctx context.Context, s catalog.Size) (catalog.Size, error)
	UpdateSize(ctx context.Context, s catalog.Size) (catalog.Size, error)
	DeleteSize(ctx context.Context, id string) error
	ListSizes(ctx context.Context, p listquery.Params) ([]catalog.Size, int, error)

	CreateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error)
	UpdateCollection(ctx context.Context, c catalog.Collection) (catalog.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	ListCollections(ctx context.Context, p listquery.Params) ([]catalog.Collection, int, error)
}

// BlogStore persists posts and tags.
type BlogStore interface {
	CreatePost(ctx context.Context, p blog.Post) (blog.Post, error)
	UpdatePost(ctx context.Context, p blog.Post) (blog.Post, error)
	GetPost(ctx context.Context, id string) (blog.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, p listquery.Params) ([]blog.Post, int, error)

	CreateTag(ctx context.Context, t blog.Tag) (blog.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	ListTags(ctx context.Context, p listquery.Params) ([]blog.Tag, int, error)
}

// OrderStore reads and updates placed orders.
type OrderStore interface {
	GetOrder(ctx context.Context, id string) (order.Order, error)
	ListOrders(ctx context.Context, p listquery.Params) ([]order.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (order.Order, error)
	PlaceOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// CustomerStore reads shop accounts.
type CustomerStore interface {
	GetCustomer(ctx context.Context, id string) (customer.Customer, error)
	ListCustomers(ctx context.Context, p listquery.Params) ([]customer.Customer, int, error)
}

// Authenticator performs the backend login mutation.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (session.Session, error)
}
