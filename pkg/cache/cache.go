// Package cache stores computed chart artifacts keyed by content hash.
//
// # Backends
//
//   - [NullCache] never stores anything and is used when caching is off.
//   - [FileCache] keeps entries as JSON files under a directory, for the CLI.
//   - [RedisCache] keeps entries in Redis, for the API server.
//
// # Keys
//
// A [Keyer] derives keys from the inputs of a computation. Every option that
// changes the output is part of the key, so a cached value is valid until
// its TTL expires:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ChartKey(cache.Hash(tableJSON), opts.ChartKeyOpts())
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per artifact kind.
const (
	TTLChart      = 7 * 24 * time.Hour
	TTLDownsample = 24 * time.Hour
	TTLStats      = 24 * time.Hour
)
