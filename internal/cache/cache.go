// Package cache provides Valkey (Redis-compatible) client initialization,
// the cache key scheme for every cached query family, read-through
// accessors, and the invalidation coordinator that keeps cached views
// consistent with the database.
package cache

import (
	"context"
	"time"
)

// Cache is the minimal key-value cache contract: exact-key get, set
// with TTL, and exact-key delete. Absence is a miss, never an error,
// and backend failures degrade to misses. Implementations log their
// own errors.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// PatternCache extends Cache with bulk deletion of every key under a
// namespace prefix. Backends without this capability still work: the
// invalidator skips prefix deletions and entries expire by TTL instead.
type PatternCache interface {
	Cache
	DeleteByPrefix(ctx context.Context, prefix string)
}
