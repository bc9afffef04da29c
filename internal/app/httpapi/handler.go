// Package httpapi exposes the shop over REST: a public storefront surface
// (catalog browsing, cart, checkout, preferences) and an admin surface for
// managing the catalog, content and orders. Handlers translate HTTP into
// service calls; list endpoints drive the services' list controllers from
// query parameters.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/noizee/storefront/internal/app"
	"github.com/noizee/storefront/internal/app/services/auth"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/internal/middleware"
	"github.com/noizee/storefront/internal/uploads"
	"github.com/noizee/storefront/pkg/logger"
)

// Options carries the optional collaborators of the HTTP surface. Without
// Auth the admin routes are mounted unprotected, which is only acceptable in
// tests; without Uploads the upload route is not mounted at all.
type Options struct {
	Auth    *middleware.AuthMiddleware
	Uploads *uploads.Client
	Log     *logger.Logger
}

type handler struct {
	app     *app.Application
	auth    *middleware.AuthMiddleware
	uploads *uploads.Client
	log     *logger.Logger
}

// NewHandler builds the gateway router.
func NewHandler(application *app.Application, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, auth: opts.Auth, uploads: opts.Uploads, log: log}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Storefront surface.
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/session", h.session).Methods(http.MethodGet)

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/colors", h.listColors).Methods(http.MethodGet)
	api.HandleFunc("/sizes", h.listSizes).Methods(http.MethodGet)
	api.HandleFunc("/collections", h.listCollections).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.listPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", h.getPost).Methods(http.MethodGet)
	api.HandleFunc("/tags", h.listTags).Methods(http.MethodGet)

	api.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.clearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items", h.setCartQuantity).Methods(http.MethodPut)
	api.HandleFunc("/cart/items", h.removeCartItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/open", h.openCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/close", h.closeCart).Methods(http.MethodPost)
	api.HandleFunc("/checkout", h.checkout).Methods(http.MethodPost)

	api.HandleFunc("/prefs/language", h.getLanguage).Methods(http.MethodGet)
	api.HandleFunc("/prefs/language", h.setLanguage).Methods(http.MethodPut)

	// Admin surface.
	admin := api.PathPrefix("/admin").Subrouter()
	if h.auth != nil {
		admin.Use(h.auth.Handler)
	}

	admin.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	admin.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", h.updateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/inventory", h.setInventory).Methods(http.MethodPut)

	admin.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", h.createCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", h.updateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", h.deleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/colors", h.listColors).Methods(http.MethodGet)
	admin.HandleFunc("/colors", h.createColor).Methods(http.MethodPost)
	admin.HandleFunc("/colors/{id}", h.updateColor).Methods(http.MethodPut)
	admin.HandleFunc("/colors/{id}", h.deleteColor).Methods(http.MethodDelete)
	admin.HandleFunc("/sizes", h.listSizes).Methods(http.MethodGet)
	admin.HandleFunc("/sizes", h.createSize).Methods(http.MethodPost)
	admin.HandleFunc("/sizes/{id}", h.updateSize).Methods(http.MethodPut)
	admin.HandleFunc("/sizes/{id}", h.deleteSize).Methods(http.MethodDelete)
	admin.HandleFunc("/collections", h.listCollections).Methods(http.MethodGet)
	admin.HandleFunc("/collections", h.createCollection).Methods(http.MethodPost)
	admin.HandleFunc("/collections/{id}", h.updateCollection).Methods(http.MethodPut)
	admin.HandleFunc("/collections/{id}", h.deleteCollection).Methods(http.MethodDelete)

	admin.HandleFunc("/posts", h.listPosts).Methods(http.MethodGet)
	admin.HandleFunc("/posts", h.createPost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", h.getPost).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id}", h.updatePost).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id}", h.deletePost).Methods(http.MethodDelete)
	admin.HandleFunc("/tags", h.listTags).Methods(http.MethodGet)
	admin.HandleFunc("/tags", h.createTag).Methods(http.MethodPost)
	admin.HandleFunc("/tags/{id}", h.deleteTag).Methods(http.MethodDelete)

	admin.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", h.getOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods(http.MethodPut)

	admin.HandleFunc("/customers", h.listCustomers).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{id}", h.getCustomer).Methods(http.MethodGet)

	admin.HandleFunc("/cache/stats", h.cacheStats).Methods(http.MethodGet)

	if h.uploads != nil {
		admin.HandleFunc("/uploads", h.upload).Methods(http.MethodPost)
	}

	return r
}

// pageResponse is the wire shape of every list endpoint.
type pageResponse struct {
	Items      interface{} `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func (h *handler) writePage(w http.ResponseWriter, ctrl *listquery.Controller, items interface{}) {
	httputil.WriteJSON(w, http.StatusOK, pageResponse{
		Items:      items,
		Total:      ctrl.Total(),
		Page:       ctrl.Page(),
		PageSize:   ctrl.PageSize(),
		TotalPages: ctrl.TotalPages(),
	})
}

// applyListQuery maps query parameters onto the list controller. Page size,
// filters and sort apply first since each resets the page, then the requested
// page wins.
func applyListQuery(r *http.Request, ctrl *listquery.Controller, filters listquery.Filters) {
	q := r.URL.Query()
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ctrl.SetPageSize(n)
		}
	}
	ctrl.ApplyFilters(filters)
	if field := q.Get("sort"); field != "" {
		dir := listquery.SortAscending
		if q.Get("dir") == "desc" {
			dir = listquery.SortDescending
		}
		ctrl.SetSort(field, dir)
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			ctrl.SetPage(n)
		}
	}
}

// stringFilters copies the named query parameters into a filter map, skipping
// absent and empty ones.
func stringFilters(r *http.Request, filters listquery.Filters, keys ...string) {
	q := r.URL.Query()
	for _, key := range keys {
		if v := q.Get(key); v != "" {
			filters[key] = v
		}
	}
}

// boolFilters does the same for boolean parameters.
func boolFilters(r *http.Request, filters listquery.Filters, keys ...string) {
	q := r.URL.Query()
	for _, key := range keys {
		if v := q.Get(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				filters[key] = b
			}
		}
	}
}

// writeErr maps service errors onto HTTP statuses.
func (h *handler) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		httputil.NotFound(w, "")
	case errors.Is(err, auth.ErrNotAdmin):
		httputil.Forbidden(w, "administrator access required")
	default:
		h.log.WithError(err).Error("request failed")
		httputil.Internal(w)
	}
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}
