package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

func seedProducts(t *testing.T, s *Store, n int) []catalog.Product {
	t.Helper()
	out := make([]catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		p, err := s.CreateProduct(context.Background(), catalog.Product{
			Name:        fmt.Sprintf("Hoodie %02d", i),
			BasePrice:   float64(10 + i),
			CategoryID:  "1",
			IsPublished: i%2 == 0,
		})
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func TestProductCRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateProduct(ctx, catalog.Product{Name: "Tee", BasePrice: 25})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("create did not assign id/timestamps: %+v", created)
	}

	created.Name = "Oversized Tee"
	updated, err := s.UpdateProduct(ctx, created)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "Oversized Tee" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must preserve CreatedAt")
	}

	got, err := s.GetProduct(ctx, created.ID)
	if err != nil || got.Name != "Oversized Tee" {
		t.Fatalf("GetProduct = %+v, %v", got, err)
	}

	if err := s.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := s.GetProduct(ctx, created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListProductsPagination(t *testing.T) {
	s := New()
	seedProducts(t, s, 23)

	page, total, err := s.ListProducts(context.Background(), listquery.Params{Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if total != 23 {
		t.Fatalf("total = %d, want 23", total)
	}
	if len(page) != 3 {
		t.Fatalf("last page len = %d, want 3", len(page))
	}
}

func TestListProductsFilters(t *testing.T) {
	s := New()
	seedProducts(t, s, 10)

	_, total, err := s.ListProducts(context.Background(), listquery.Params{
		Limit:   10,
		Filters: listquery.Filters{"is_published": true},
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if total != 5 {
		t.Fatalf("published total = %d, want 5", total)
	}

	page, total, err := s.ListProducts(context.Background(), listquery.Params{
		Limit:   10,
		Filters: listquery.Filters{"q": "hoodie 03"},
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if total != 1 || page[0].Name != "Hoodie 03" {
		t.Fatalf("q filter mismatch: total=%d page=%+v", total, page)
	}
}

func TestListProductsSort(t *testing.T) {
	s := New()
	seedProducts(t, s, 5)

	page, _, err := s.ListProducts(context.Background(), listquery.Params{
		Limit:         5,
		SortField:     "base_price",
		SortDirection: listquery.SortDescending,
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	for i := 1; i < len(page); i++ {
		if page[i].BasePrice > page[i-1].BasePrice {
			t.Fatalf("not sorted descending by price: %+v", page)
		}
	}
}

func TestListProductsSortDescendingTies(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, p := range []catalog.Product{
		{Name: "Tee", BasePrice: 20},
		{Name: "Cap", BasePrice: 20},
		{Name: "Sticker", BasePrice: 10},
	} {
		if _, err := s.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	page, _, err := s.ListProducts(ctx, listquery.Params{
		Limit:         5,
		SortField:     "base_price",
		SortDirection: listquery.SortDescending,
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("len = %d, want 3", len(page))
	}
	got := []float64{page[0].BasePrice, page[1].BasePrice, page[2].BasePrice}
	if got[0] != 20 || got[1] != 20 || got[2] != 10 {
		t.Fatalf("descending order with equal prices broken: %v", got)
	}
}

func TestSetInventory(t *testing.T) {
	s := New()
	ctx := context.Background()
	p, _ := s.CreateProduct(ctx, catalog.Product{Name: "Cap"})

	p, err := s.SetInventory(ctx, p.ID, []catalog.InventoryLevel{
		{ColorID: "c1", SizeID: "s1", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("SetInventory: %v", err)
	}
	if !p.VariantInStock("c1", "s1") {
		t.Fatalf("variant should be in stock")
	}
	if p.VariantInStock("c1", "s2") {
		t.Fatalf("unknown variant reported in stock")
	}
}

func TestOrderStatusAndFilters(t *testing.T) {
	s := New()
	ctx := context.Background()

	o, err := s.PlaceOrder(ctx, order.Order{
		CustomerID: "7",
		Lines:      []order.Line{{ProductID: "1", Quantity: 2, UnitPrice: 20}},
	})
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Status != order.StatusPending {
		t.Fatalf("status = %q, want pending", o.Status)
	}
	if o.Total != 40 {
		t.Fatalf("total = %v, want 40", o.Total)
	}

	if _, err := s.UpdateOrderStatus(ctx, o.ID, order.StatusConfirmed); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}

	_, total, err := s.ListOrders(ctx, listquery.Params{
		Limit:   10,
		Filters: listquery.Filters{"status": order.StatusConfirmed, "customer_id": "7"},
	})
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if total != 1 {
		t.Fatalf("filtered total = %d, want 1", total)
	}
}

func TestLogin(t *testing.T) {
	s := New()
	s.AddCustomer(customer.Customer{
		DisplayName: "Shop Admin",
		Username:    "admin",
		Email:       "admin@noizee.example",
		IsAdmin:     true,
	}, "s3cret")

	sess, err := s.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.Valid() {
		t.Fatalf("admin session should be valid: %+v", sess)
	}

	if _, err := s.Login(context.Background(), "admin", "wrong"); err == nil {
		t.Fatalf("wrong password must fail")
	}

	// Email works as identifier too.
	if _, err := s.Login(context.Background(), "admin@noizee.example", "s3cret"); err != nil {
		t.Fatalf("email login: %v", err)
	}
}
