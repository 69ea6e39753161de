// Package storage is the persistence adapter of the storefront: a small
// key-value contract with JSON helpers that never fail the caller on
// malformed or missing data.
package storage

import (
	"context"
	"errors"
	"strings"
)

// Well-known value names. Session scoped values are stored under
// SessionKey(sessionID, name), per-user values under UserKey(uid, name);
// the order collection is global.
const (
	KeyAddresses = "addresses"
	KeyCart      = "cart"
	KeyOrders    = "orders"
	KeyUser      = "user"
	KeyWishlist  = "wishlist"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("empty storage key")
)

// Store is a durable key-value store holding serialized values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionKey scopes a value name to a storefront session.
func SessionKey(sessionID, name string) string {
	return "session:" + strings.TrimSpace(sessionID) + ":" + name
}

// UserKey scopes a value name to a user id, independent of session.
func UserKey(uid, name string) string {
	return "user:" + strings.TrimSpace(uid) + ":" + name
}
