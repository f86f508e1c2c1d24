// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Valkey is the production cache backed by a Valkey client. It
// implements PatternCache: prefix deletion walks the keyspace with
// SCAN and deletes in batches.
type Valkey struct {
	client *redis.Client
}

// NewValkey wraps a connected Valkey client in the Cache contract.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

// Get retrieves the value stored under key. Returns false on miss.
// Backend errors are logged and reported as a miss so a degraded cache
// never fails the surrounding request.
func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := v.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("cache hit", "key", key)
	return val, true
}

// Set stores value under key with the given TTL.
func (v *Valkey) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := v.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("cache set error", "key", key, "error", err)
	}
}

// Delete removes a single key. Deleting an absent key is a no-op.
func (v *Valkey) Delete(ctx context.Context, key string) {
	if err := v.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache delete error", "key", key, "error", err)
	}
}

// DeleteByPrefix removes every key under prefix by scanning the
// keyspace. Used when the exact set of stale keys is unbounded, such
// as "every cached list view".
func (v *Valkey) DeleteByPrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := v.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := v.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("cache bulk delete error", "prefix", prefix, "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("cache prefix cleared", "prefix", prefix, "deleted", deleted)
	}
}
