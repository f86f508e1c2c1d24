// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// readthrough.go wraps read queries with check-cache / populate-on-miss
// behavior. Values are stored as JSON; each hit decodes into a fresh
// value, so a cached collection is an immutable snapshot: mutating the
// returned slice never touches the cache entry or the database.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// GetOrCompute returns the cached value under key, or invokes compute
// on a miss and stores the result with the given TTL. Compute errors
// propagate to the caller and are never cached. A corrupt cache entry
// is treated as a miss.
func GetOrCompute[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var result T

	if payload, ok := c.Get(ctx, key); ok {
		if err := json.Unmarshal(payload, &result); err == nil {
			return result, nil
		}
		slog.Warn("cache entry corrupt, recomputing", "key", key)
	}

	result, err := compute()
	if err != nil {
		return result, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		// The computed value is still good, serve it uncached.
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return result, nil
	}
	c.Set(ctx, key, payload, ttl)

	return result, nil
}
