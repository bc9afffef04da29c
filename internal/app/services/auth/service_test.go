package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/app/storage/memory"
	"github.com/noizee/storefront/internal/localstore"
)

type fakePurger struct{ cleared bool }

func (f *fakePurger) Clear() { f.cleared = true }

// brokenStore fails every operation, standing in for an unusable disk.
type brokenStore struct{ err error }

func (b *brokenStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, b.err }
func (b *brokenStore) Put(context.Context, string, []byte) error         { return b.err }
func (b *brokenStore) Delete(context.Context, string) error              { return b.err }
func (b *brokenStore) Close() error                                      { return nil }

func backendWith(t *testing.T, admin bool) *memory.Store {
	t.Helper()
	backend := memory.New()
	backend.AddCustomer(customer.Customer{
		DisplayName: "Someone",
		Username:    "someone",
		Email:       "someone@noizee.example",
		IsAdmin:     admin,
	}, "pw")
	return backend
}

func TestLoginAdmin(t *testing.T) {
	store := localstore.NewMemory()
	s := NewService(backendWith(t, true), store, nil)
	ctx := context.Background()

	if s.State() != session.Anonymous {
		t.Fatalf("fresh service must be anonymous")
	}

	sess, err := s.Login(ctx, "someone", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.Valid() || s.State() != session.AuthenticatedAdmin {
		t.Fatalf("state = %v after admin login", s.State())
	}
	if s.Token() == "" {
		t.Fatalf("token source must return the session token")
	}
	if _, ok, _ := store.Get(ctx, storageKey); !ok {
		t.Fatalf("session must be persisted")
	}
}

func TestLoginNonAdminRejected(t *testing.T) {
	store := localstore.NewMemory()
	s := NewService(backendWith(t, false), store, nil)
	ctx := context.Background()

	_, err := s.Login(ctx, "someone", "pw")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("non-admin login must leave the session anonymous")
	}
	if _, ok, _ := store.Get(ctx, storageKey); ok {
		t.Fatalf("nothing must be persisted for a rejected login")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	s := NewService(backendWith(t, true), localstore.NewMemory(), nil)
	if _, err := s.Login(context.Background(), "someone", "wrong"); err == nil {
		t.Fatalf("wrong password must fail")
	}
	if s.IsAuthenticated() {
		t.Fatalf("failed login must leave the session anonymous")
	}
}

func TestFailedLoginDropsActiveSession(t *testing.T) {
	store := localstore.NewMemory()
	backend := backendWith(t, true)
	backend.AddCustomer(customer.Customer{
		DisplayName: "Visitor",
		Username:    "visitor",
		Email:       "visitor@noizee.example",
		IsAdmin:     false,
	}, "pw")
	s := NewService(backend, store, nil)
	ctx := context.Background()

	if _, err := s.Login(ctx, "someone", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A rejected re-login must not leave the previous session behind.
	if _, err := s.Login(ctx, "someone", "wrong"); err == nil {
		t.Fatalf("wrong password must fail")
	}
	if s.State() != session.Anonymous {
		t.Fatalf("state = %v after rejected login, want anonymous", s.State())
	}
	if _, ok, _ := store.Get(ctx, storageKey); ok {
		t.Fatalf("rejected login must scrub the persisted session")
	}

	// Same for a re-login that resolves to a non-administrator account.
	if _, err := s.Login(ctx, "someone", "pw"); err != nil {
		t.Fatalf("Login again: %v", err)
	}
	if _, err := s.Login(ctx, "visitor", "pw"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("state = %v after non-admin login, want anonymous", s.State())
	}
	if _, ok, _ := store.Get(ctx, storageKey); ok {
		t.Fatalf("non-admin login must scrub the persisted session")
	}
}

func TestLoadToleratesUnreadableStore(t *testing.T) {
	s := NewService(backendWith(t, true), &brokenStore{err: errors.New("disk gone")}, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load with unreadable store: %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("unreadable store must resolve to anonymous")
	}
}

func TestLogoutPurges(t *testing.T) {
	store := localstore.NewMemory()
	purger := &fakePurger{}
	s := NewService(backendWith(t, true), store, nil, purger)
	ctx := context.Background()

	if _, err := s.Login(ctx, "someone", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("logout must return to anonymous")
	}
	if !purger.cleared {
		t.Fatalf("logout must purge registered caches")
	}
	if _, ok, _ := store.Get(ctx, storageKey); ok {
		t.Fatalf("logout must scrub the persisted session")
	}
}

func TestLogoutWhileAnonymousIsNoop(t *testing.T) {
	purger := &fakePurger{}
	s := NewService(backendWith(t, true), localstore.NewMemory(), nil, purger)
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if purger.cleared {
		t.Fatalf("anonymous logout must not purge caches")
	}
}

func TestLoadRestoresValidSession(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()

	first := NewService(backendWith(t, true), store, nil)
	if _, err := first.Login(ctx, "someone", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	second := NewService(backendWith(t, true), store, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if second.State() != session.AuthenticatedAdmin {
		t.Fatalf("restored state = %v", second.State())
	}
}

func TestLoadDiscardsTamperedSession(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()

	// Token present but the admin flag was stripped.
	if err := store.Put(ctx, storageKey, []byte(`{"token":"tok","is_admin":false}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := NewService(backendWith(t, true), store, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("session without admin grant must resolve to anonymous")
	}
	if _, ok, _ := store.Get(ctx, storageKey); ok {
		t.Fatalf("invalid persisted session must be scrubbed")
	}
}

func TestLoadDiscardsCorruptPayload(t *testing.T) {
	store := localstore.NewMemory()
	ctx := context.Background()
	if err := store.Put(ctx, storageKey, []byte("garbage")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := NewService(backendWith(t, true), store, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.State() != session.Anonymous {
		t.Fatalf("corrupt session must resolve to anonymous")
	}
}
