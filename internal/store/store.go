package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound means the key does not exist or its entry has expired.
var ErrNotFound = errors.New("store: key not found")

// Store is a TTL-capable key/value store. The gateway keeps its quiz
// counters, rate-limit buckets, and roster cache here. Implementations must
// be safe for concurrent use; read-modify-write cycles on a single key are
// serialized by callers, not by the store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes key=value. A zero ttl means the entry never expires.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
