package graphql

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/customer"
	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/listquery"
)

func customerID(d customerDTO) string { return d.ID }

func (s *Store) ListCustomers(ctx context.Context, p listquery.Params) ([]customer.Customer, int, error) {
	items, count, err := fetchPage[customerDTO](ctx, s, kindCustomer, "Customers", queryCustomers, "customers", p, customerID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]customer.Customer, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (customer.Customer, error) {
	d, err := fetchOne[customerDTO](ctx, s, kindCustomer, "Customer", queryCustomer, "customer", id)
	if err != nil {
		return customer.Customer{}, err
	}
	return d.toDomain(), nil
}

// Login runs the backend login mutation. The result is returned as-is; the
// session service decides whether the credentials actually grant access.
func (s *Store) Login(ctx context.Context, identifier, password string) (session.Session, error) {
	var envelope struct {
		Login loginDTO `json:"login"`
	}
	req := gqlclient.Request{
		Query:         mutationLogin,
		OperationName: "Login",
		Variables:     map[string]interface{}{"identifier": identifier, "password": password},
	}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return session.Session{}, mapErr(err)
	}
	return envelope.Login.toSession(), nil
}
