// Package kvstore provides the persistent key-value backends the cache layer
// sits on. Three implementations exist: an in-memory store for tests and
// single-process use, a Redis store, and a SQL store using database/sql.
//
// The cache layer performs its own TTL bookkeeping; the ttl passed to Set is
// a durability bound that lets backends drop entries on their own once they
// can no longer be served.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound indicates that the requested key does not exist or has
// already been dropped by the backend.
var ErrKeyNotFound = errors.New("key not found")

// Store is the minimal key-value contract the cache layer depends on.
// Values are opaque strings (the cache layer stores JSON).
type Store interface {
	// Get returns the value for the key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value. A ttl of zero means no backend-side expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key with the given prefix and returns
	// the number of keys removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)

	// DeleteExpired removes entries past their backend-side expiry and
	// returns the number removed. Backends with native expiry (Redis)
	// return 0 without doing work.
	DeleteExpired(ctx context.Context) (int, error)
}
