package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/noizee/storefront/internal/app/validation"
	"github.com/noizee/storefront/internal/localstore"
)

// brokenStore fails every operation, standing in for an unusable disk.
type brokenStore struct{ err error }

func (b *brokenStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, b.err }
func (b *brokenStore) Put(context.Context, string, []byte) error         { return b.err }
func (b *brokenStore) Delete(context.Context, string) error              { return b.err }
func (b *brokenStore) Close() error                                      { return nil }

func TestLanguageSurvivesRestart(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()

	first := NewService(store, nil)
	if err := first.SetLanguage(ctx, "fr"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}

	second := NewService(store, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := second.Language(); got != "fr" {
		t.Fatalf("language = %q, want fr", got)
	}
}

func TestUnsupportedLanguageRejected(t *testing.T) {
	s := NewService(localstore.NewMemory(), nil)
	if err := s.SetLanguage(context.Background(), "xx"); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("unsupported language: got %v", err)
	}
	if got := s.Language(); got != DefaultLanguage {
		t.Fatalf("language = %q, want default", got)
	}
}

func TestUnsupportedPersistedLanguageDiscarded(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, languageKey, []byte("xx")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := NewService(store, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Language(); got != DefaultLanguage {
		t.Fatalf("language = %q, want default", got)
	}
	if _, ok, _ := store.Get(ctx, languageKey); ok {
		t.Fatalf("unsupported persisted language must be scrubbed")
	}
}

func TestStorageFailuresDoNotBlockPrefs(t *testing.T) {
	s := NewService(&brokenStore{err: errors.New("disk gone")}, nil)
	ctx := context.Background()

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load with unreadable store: %v", err)
	}
	if got := s.Language(); got != DefaultLanguage {
		t.Fatalf("language = %q, want default", got)
	}
	if err := s.SetLanguage(ctx, "fr"); err != nil {
		t.Fatalf("SetLanguage with failing store: %v", err)
	}
	if got := s.Language(); got != "fr" {
		t.Fatalf("in-memory language must still switch, got %q", got)
	}
}
