// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// memoryEntry holds a cached value and its expiry deadline.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a concurrency-safe in-process cache. It implements
// PatternCache and is used in tests in place of Valkey; expired
// entries are dropped lazily on access.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get retrieves the value stored under key. Returns false on miss or
// after expiry.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}

	// Copy so callers can't mutate the cached snapshot.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true
}

// Set stores value under key with the given TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
}

// Delete removes a single key. Deleting an absent key is a no-op.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// DeleteByPrefix removes every key under prefix.
func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) {
	m.mu.Lock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	m.mu.Unlock()
}

// Len returns the number of live entries, counting expired ones that
// haven't been dropped yet.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
