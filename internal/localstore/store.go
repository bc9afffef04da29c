// Package localstore provides the durable key-value storage the client keeps
// between runs: the auth token, the administrator flag, the serialized cart
// and the preferred language. Backends range from a single-file bolt database
// for desktop use to redis or postgres for shared gateway deployments.
//
// Components own disjoint key prefixes and never contend for the same key,
// so the store needs no cross-key transactions.
package localstore

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("localstore: store is closed")

// Store is a durable string-keyed byte store.
type Store interface {
	// Get returns the stored value. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores the value, replacing any previous one.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
