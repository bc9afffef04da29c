package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/listquery"
)

// fakeBackend replays canned GraphQL responses keyed by operation name and
// counts how many requests each operation receives.
type fakeBackend struct {
	responses map[string]string
	hits      map[string]*int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{responses: make(map[string]string), hits: make(map[string]*int64)}
}

func (f *fakeBackend) respond(op, body string) {
	f.responses[op] = body
	f.hits[op] = new(int64)
}

func (f *fakeBackend) count(op string) int64 {
	if c, ok := f.hits[op]; ok {
		return atomic.LoadInt64(c)
	}
	return 0
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OperationName string `json:"operationName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, ok := f.responses[req.OperationName]
		if !ok {
			http.Error(w, fmt.Sprintf("unexpected operation %q", req.OperationName), http.StatusBadRequest)
			return
		}
		atomic.AddInt64(f.hits[req.OperationName], 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func newTestStore(t *testing.T, backend *fakeBackend) *Store {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	client, err := gqlclient.New(gqlclient.Config{Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("gqlclient.New: %v", err)
	}
	return New(client, entitycache.New(entitycache.Config{Name: "test"}), nil)
}

const productsPage = `{"data":{"products":{"items":[
  {"id":"1","name":"Hoodie","basePrice":59,"categoryId":"9","isPublished":true},
  {"id":"2","name":"Tee","basePrice":25,"categoryId":"9","isPublished":true}
],"count":12}}}`

func TestListProductsCachesPage(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	s := newTestStore(t, backend)

	p := listquery.Params{Limit: 10, Offset: 0}
	items, count, err := s.ListProducts(context.Background(), p)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if count != 12 || len(items) != 2 {
		t.Fatalf("count=%d len=%d, want 12/2", count, len(items))
	}
	if items[0].Name != "Hoodie" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}

	// Second identical call is served from the cache.
	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("cached ListProducts: %v", err)
	}
	if got := backend.count("Products"); got != 1 {
		t.Fatalf("backend hit %d times, want 1", got)
	}

	// Different parameters miss the cache.
	if _, _, err := s.ListProducts(context.Background(), listquery.Params{Limit: 10, Offset: 10}); err != nil {
		t.Fatalf("ListProducts page 2: %v", err)
	}
	if got := backend.count("Products"); got != 2 {
		t.Fatalf("backend hit %d times, want 2", got)
	}
}

func TestGetProductServedFromListCache(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	s := newTestStore(t, backend)

	if _, _, err := s.ListProducts(context.Background(), listquery.Params{Limit: 10}); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	// The list normalized both entities, so the single read needs no network.
	got, err := s.GetProduct(context.Background(), "2")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Name != "Tee" {
		t.Fatalf("GetProduct = %+v", got)
	}
}

func TestUpdateProductMergesWithoutDroppingLists(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	backend.respond("UpdateProduct", `{"data":{"updateProduct":
	  {"id":"1","name":"Hoodie Deluxe","basePrice":69,"categoryId":"9","isPublished":true}}}`)
	s := newTestStore(t, backend)

	p := listquery.Params{Limit: 10}
	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if _, err := s.UpdateProduct(context.Background(), catalog.Product{ID: "1", Name: "Hoodie Deluxe", BasePrice: 69}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	// The cached page survives and reflects the merged fields.
	items, _, err := s.ListProducts(context.Background(), p)
	if err != nil {
		t.Fatalf("ListProducts after update: %v", err)
	}
	if backend.count("Products") != 1 {
		t.Fatalf("update must not invalidate cached lists")
	}
	if items[0].Name != "Hoodie Deluxe" || items[0].BasePrice != 69 {
		t.Fatalf("cached list did not observe merge: %+v", items[0])
	}
}

func TestDeleteProductInvalidatesLists(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	backend.respond("DeleteProduct", `{"data":{"deleteProduct":true}}`)
	s := newTestStore(t, backend)

	p := listquery.Params{Limit: 10}
	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if err := s.DeleteProduct(context.Background(), "1"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts after delete: %v", err)
	}
	if got := backend.count("Products"); got != 2 {
		t.Fatalf("delete must drop cached lists; backend hit %d times, want 2", got)
	}
}

func TestDeleteProductDeclinedKeepsCache(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	backend.respond("DeleteProduct", `{"data":{"deleteProduct":false}}`)
	s := newTestStore(t, backend)

	p := listquery.Params{Limit: 10}
	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	// The backend declined, so nothing was deleted server-side.
	if err := s.DeleteProduct(context.Background(), "1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("declined delete must report not found, got %v", err)
	}

	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts after declined delete: %v", err)
	}
	if got := backend.count("Products"); got != 1 {
		t.Fatalf("declined delete must keep cached lists; backend hit %d times, want 1", got)
	}
}

func TestCreateProductInvalidatesLists(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Products", productsPage)
	backend.respond("CreateProduct", `{"data":{"createProduct":
	  {"id":"3","name":"Cap","basePrice":15,"categoryId":"9","isPublished":false}}}`)
	s := newTestStore(t, backend)

	p := listquery.Params{Limit: 10}
	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if _, err := s.CreateProduct(context.Background(), catalog.Product{Name: "Cap", BasePrice: 15}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if _, _, err := s.ListProducts(context.Background(), p); err != nil {
		t.Fatalf("ListProducts after create: %v", err)
	}
	if got := backend.count("Products"); got != 2 {
		t.Fatalf("create must drop cached lists; backend hit %d times, want 2", got)
	}
}

func TestGetProductNotFound(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Product", `{"errors":[{"message":"no such product","extensions":{"code":"NOT_FOUND"}}]}`)
	s := newTestStore(t, backend)

	_, err := s.GetProduct(context.Background(), "404")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected storage.ErrNotFound, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	backend := newFakeBackend()
	backend.respond("Login", `{"data":{"login":{"token":"tok-1","user":
	  {"id":"7","displayName":"Shop Admin","username":"admin","email":"a@noizee.example","isAdmin":true}}}}`)
	s := newTestStore(t, backend)

	sess, err := s.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.Valid() || sess.UserID != "7" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}
