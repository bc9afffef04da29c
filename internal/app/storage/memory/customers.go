package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/listquery"
)

// credential pairs a stored password with the customer it belongs to.
type credential struct {
	customerID string
	password   string
}

// AddCustomer registers an account and its login credential. Both the
// username and the email work as the login identifier.
func (s *Store) AddCustomer(c customer.Customer, password string) customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.nextIDLocked()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	s.customers[c.ID] = c
	cred := credential{customerID: c.ID, password: password}
	if c.Username != "" {
		s.credentials[c.Username] = cred
	}
	if c.Email != "" {
		s.credentials[c.Email] = cred
	}
	return c
}

func (s *Store) GetCustomer(_ context.Context, id string) (customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return customer.Customer{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCustomers(_ context.Context, p listquery.Params) ([]customer.Customer, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if !matchCustomer(c, p.Filters) {
			continue
		}
		matched = append(matched, c)
	}
	applySort(matched, p, func(a, b customer.Customer, field string) (bool, bool) {
		switch field {
		case "name":
			return a.DisplayName < b.DisplayName, true
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt), true
		}
		return false, false
	}, func(a, b customer.Customer) bool {
		return orderless(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	page, total := paginate(matched, p)
	return page, total, nil
}

func matchCustomer(c customer.Customer, f listquery.Filters) bool {
	if v, ok := boolFilter(f, "is_admin"); ok && c.IsAdmin != v {
		return false
	}
	if v, ok := stringFilter(f, "q"); ok {
		if !containsFold(c.DisplayName, v) && !containsFold(c.Username, v) && !containsFold(c.Email, v) {
			return false
		}
	}
	return true
}

// Login verifies the identifier/password pair and mints a session. The token
// is an opaque random value; admin status comes from the account record.
func (s *Store) Login(_ context.Context, identifier, password string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[identifier]
	if !ok || cred.password != password {
		return session.Session{}, fmt.Errorf("invalid credentials")
	}
	c := s.customers[cred.customerID]
	return session.Session{
		Token:       uuid.NewString(),
		IsAdmin:     c.IsAdmin,
		UserID:      c.ID,
		DisplayName: c.DisplayName,
		Username:    c.Username,
		Email:       c.Email,
	}, nil
}
