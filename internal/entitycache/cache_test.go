package entitycache

import (
	"testing"
	"time"

	"github.com/noizee/storefront/internal/listquery"
)

func TestCache_MergeNormalizesByIdentity(t *testing.T) {
	c := New(Config{Name: "test"})

	c.Put("Product", "p1", Fields{"name": "Tee", "price": 19.0, "status": "draft"})
	c.Merge("Product", "p1", Fields{"status": "published"})

	got, ok := c.Get("Product", "p1")
	if !ok {
		t.Fatalf("entity missing after merge")
	}
	if got["name"] != "Tee" || got["status"] != "published" {
		t.Fatalf("merge must keep old fields and apply new ones: %#v", got)
	}
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := New(Config{})
	c.Put("Product", "p1", Fields{"name": "Tee"})

	got, _ := c.Get("Product", "p1")
	got["name"] = "mutated"

	again, _ := c.Get("Product", "p1")
	if again["name"] != "Tee" {
		t.Fatalf("cache snapshot leaked: %#v", again)
	}
}

func TestCache_DeleteInvalidatesKindLists(t *testing.T) {
	c := New(Config{})
	p := listquery.Params{Limit: 10}
	c.Put("Product", "p1", Fields{"name": "Tee"})
	c.PutList("Product", p, []Key{{Kind: "Product", ID: "p1"}}, 1)
	c.PutList("Category", p, []Key{{Kind: "Category", ID: "c1"}}, 1)

	c.Delete("Product", "p1")

	if _, ok := c.Get("Product", "p1"); ok {
		t.Fatalf("entity should be gone")
	}
	if _, _, ok := c.GetList("Product", p); ok {
		t.Fatalf("product lists must be invalidated by delete")
	}
	if _, _, ok := c.GetList("Category", p); !ok {
		t.Fatalf("other kinds must be untouched")
	}
}

func TestCache_ListKeyOrderIndependent(t *testing.T) {
	a := listquery.Params{Limit: 10, Filters: listquery.Filters{"status": "approved", "category": "tees"}}
	b := listquery.Params{Limit: 10, Filters: listquery.Filters{"category": "tees", "status": "approved"}}
	if ListKey(a) != ListKey(b) {
		t.Fatalf("filter order must not change the key: %q vs %q", ListKey(a), ListKey(b))
	}

	c := listquery.Params{Limit: 10, Offset: 10, Filters: listquery.Filters{"status": "approved", "category": "tees"}}
	if ListKey(a) == ListKey(c) {
		t.Fatalf("different offsets must produce different keys")
	}

	// Generation is controller bookkeeping, not part of the query.
	d := a
	d.Generation = 42
	if ListKey(a) != ListKey(d) {
		t.Fatalf("generation must not affect the key")
	}
}

func TestCache_LRUEviction(t *testing.T) {
	c := New(Config{MaxEntities: 2})
	c.Put("Product", "p1", Fields{})
	c.Put("Product", "p2", Fields{})
	c.Get("Product", "p1") // p2 is now least recently used
	c.Put("Product", "p3", Fields{})

	if _, ok := c.Get("Product", "p2"); ok {
		t.Fatalf("p2 should have been evicted")
	}
	if _, ok := c.Get("Product", "p1"); !ok {
		t.Fatalf("p1 should have survived")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New(Config{TTL: time.Nanosecond})
	c.Put("Product", "p1", Fields{})
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("Product", "p1"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestCache_ClearEmptiesEverything(t *testing.T) {
	c := New(Config{})
	c.Put("Product", "p1", Fields{})
	c.PutList("Product", listquery.Params{Limit: 10}, nil, 0)

	c.Clear()

	s := c.Stats()
	if s.Entities != 0 || s.Lists != 0 {
		t.Fatalf("clear left data behind: %+v", s)
	}
}

func TestCache_CleanExpired(t *testing.T) {
	c := New(Config{TTL: time.Nanosecond})
	c.Put("Product", "p1", Fields{})
	c.PutList("Product", listquery.Params{Limit: 10}, nil, 0)
	time.Sleep(time.Millisecond)

	if got := c.CleanExpired(); got != 2 {
		t.Fatalf("cleaned %d entries, want 2", got)
	}
}
