// Package cache stores generated brackets and rendered artifacts.
//
// The CLI uses a [FileCache] under the user cache directory, the HTTP server
// a [RedisCache] when one is configured, and tests or --no-cache runs a
// [NullCache]. Keys come from a [Keyer] so every entry point agrees on them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Entry lifetimes. Generation is deterministic, so entries only go stale
// when the program itself changes; the TTLs bound disk and memory use.
const (
	TTLBracket  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLRoster   = time.Hour
)
