// Package cache stores pipeline intermediates: fetched datasets, computed
// layouts and rendered artifacts.
//
// A [Cache] is a flat byte store with per-entry TTLs. Keys are produced by a
// [Keyer] so that every backend (file, memory, Redis) agrees on the layout:
//
//	http:<namespace>:<key>        raw HTTP responses (remote datasets)
//	dataset:<sha256>              parsed datasets
//	layout:<sha256>               layouts, keyed by dataset hash + options
//	artifact:<sha256>             rendered SVG/PNG/PDF/JSON bytes
//
// The CLI uses [FileCache], the HTTP server uses [RedisCache] when an
// address is configured, and tests use [MemoryCache] or [NullCache].
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLHTTP     = 24 * time.Hour
	TTLDataset  = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with expiring entries. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
