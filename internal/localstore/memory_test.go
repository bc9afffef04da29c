package localstore

import (
	"bytes"
	"context"
	"testing"
)

func TestMemory_RoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "cart.items", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := s.Get(ctx, "cart.items")
	if err != nil || !ok || !bytes.Equal(v, []byte(`[]`)) {
		t.Fatalf("get: %q ok=%v err=%v", v, ok, err)
	}

	// The returned slice must be detached from the stored one.
	v[0] = 'x'
	again, _, _ := s.Get(ctx, "cart.items")
	if !bytes.Equal(again, []byte(`[]`)) {
		t.Fatalf("stored value mutated through returned slice")
	}

	if err := s.Delete(ctx, "cart.items"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "cart.items"); ok {
		t.Fatalf("key should be gone")
	}
	if err := s.Delete(ctx, "cart.items"); err != nil {
		t.Fatalf("deleting an absent key must not fail: %v", err)
	}
}

func TestMemory_Closed(t *testing.T) {
	s := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Put(context.Background(), "k", nil); err != ErrClosed {
		t.Fatalf("put after close: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); err != ErrClosed {
		t.Fatalf("get after close: %v", err)
	}
}
