package graphql

import (
	"context"

	"github.com/noizee/storefront/internal/app/storage"
	"github.com/noizee/storefront/internal/entitycache"
	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/listquery"
)

// pageDTO is the common list envelope: one page of items plus the total
// matching count on the server.
type pageDTO[D any] struct {
	Items []D `json:"items"`
	Count int `json:"count"`
}

// cachedPage reassembles a list page entirely from the cache. Any missing or
// undecodable member fails the whole page so the caller re-fetches.
func cachedPage[D any](s *Store, kind string, p listquery.Params) ([]D, int, bool) {
	ids, count, ok := s.cache.GetList(kind, p)
	if !ok {
		return nil, 0, false
	}
	items := make([]D, 0, len(ids))
	for _, key := range ids {
		fields, ok := s.cache.Get(key.Kind, key.ID)
		if !ok {
			return nil, 0, false
		}
		var d D
		if !fromFields(fields, &d) {
			return nil, 0, false
		}
		items = append(items, d)
	}
	return items, count, true
}

// fetchPage returns one list page, cache first. On a network fetch every
// member is normalized into the cache and the page itself is cached under
// the parameter snapshot.
func fetchPage[D any](ctx context.Context, s *Store, kind, opName, query, field string, p listquery.Params, idOf func(D) string) ([]D, int, error) {
	if items, count, ok := cachedPage[D](s, kind, p); ok {
		return items, count, nil
	}

	var envelope map[string]pageDTO[D]
	req := gqlclient.Request{Query: query, OperationName: opName, Variables: gqlclient.ListVariables(p)}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return nil, 0, mapErr(err)
	}
	page := envelope[field]

	keys := make([]entitycache.Key, 0, len(page.Items))
	for _, d := range page.Items {
		id := idOf(d)
		s.cache.Put(kind, id, fieldsOf(d))
		keys = append(keys, entitycache.Key{Kind: kind, ID: id})
	}
	s.cache.PutList(kind, p, keys, page.Count)

	return page.Items, page.Count, nil
}

// fetchOne returns one entity, cache first.
func fetchOne[D any](ctx context.Context, s *Store, kind, opName, query, field, id string) (D, error) {
	var zero D
	if fields, ok := s.cache.Get(kind, id); ok {
		var d D
		if fromFields(fields, &d) {
			return d, nil
		}
	}

	var envelope map[string]*D
	req := gqlclient.Request{Query: query, OperationName: opName, Variables: map[string]interface{}{"id": id}}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return zero, mapErr(err)
	}
	d := envelope[field]
	if d == nil {
		return zero, storage.ErrNotFound
	}
	s.cache.Put(kind, id, fieldsOf(*d))
	return *d, nil
}

// mutateCreate runs a returning mutation for a brand new entity. Creation
// changes list membership and ordering everywhere, so cached pages of the
// kind are dropped wholesale.
func mutateCreate[D any](ctx context.Context, s *Store, kind, opName, query, field string, vars map[string]interface{}, idOf func(D) string) (D, error) {
	var zero D
	var envelope map[string]*D
	req := gqlclient.Request{Query: query, OperationName: opName, Variables: vars}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return zero, mapErr(err)
	}
	d := envelope[field]
	if d == nil {
		return zero, storage.ErrNotFound
	}
	s.cache.Put(kind, idOf(*d), fieldsOf(*d))
	s.cache.InvalidateLists(kind)
	return *d, nil
}

// mutateUpdate runs a returning mutation for an existing entity and merges
// the result into its normalized snapshot. Cached lists stay valid: they
// hold keys, so members pick up the new field values automatically.
func mutateUpdate[D any](ctx context.Context, s *Store, kind, opName, query, field string, vars map[string]interface{}, idOf func(D) string) (D, error) {
	var zero D
	var envelope map[string]*D
	req := gqlclient.Request{Query: query, OperationName: opName, Variables: vars}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return zero, mapErr(err)
	}
	d := envelope[field]
	if d == nil {
		return zero, storage.ErrNotFound
	}
	s.cache.Merge(kind, idOf(*d), fieldsOf(*d))
	return *d, nil
}

// mutateDelete runs a delete mutation. The backend acknowledges with a bare
// boolean; only a true reply evicts the entity, which also invalidates every
// cached list of the kind. A false reply means nothing was deleted, so the
// cache keeps the entity and the caller gets ErrNotFound.
func mutateDelete(ctx context.Context, s *Store, kind, opName, query, field, id string) error {
	var envelope map[string]bool
	req := gqlclient.Request{Query: query, OperationName: opName, Variables: map[string]interface{}{"id": id}}
	if err := s.gql.Do(ctx, req, &envelope); err != nil {
		return mapErr(err)
	}
	if !envelope[field] {
		return storage.ErrNotFound
	}
	s.cache.Delete(kind, id)
	return nil
}
