// Package cache stores rendered artifacts keyed by their inputs.
//
// Three backends implement [Cache]:
//   - [FileCache]: sharded JSON files under the XDG cache directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer], which hashes every input that affects the
// output so that a changed option can never return a stale artifact.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and
	// unexpired. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultTTL is how long artifacts live when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour
