// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// invalidation_log.go records cache invalidation events in the database
// for audit and debugging purposes. Each entry captures what was
// invalidated, when, and why (create/update/delete).
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// InvalidationLogStore persists the cache invalidation audit trail.
// It satisfies cache.InvalidationLog.
type InvalidationLogStore struct {
	db *sql.DB
}

// NewInvalidationLogStore creates a new InvalidationLogStore.
func NewInvalidationLogStore(db *sql.DB) *InvalidationLogStore {
	return &InvalidationLogStore{db: db}
}

// Record logs a cache invalidation event. Best-effort: failures are
// logged and never propagate into the triggering request.
func (s *InvalidationLogStore) Record(entityType string, entityID uuid.UUID, action string) {
	_, err := s.db.Exec(`
		INSERT INTO cache_invalidation_log (entity_type, entity_id, action)
		VALUES ($1, $2, $3)
	`, entityType, entityID, action)
	if err != nil {
		slog.Warn("failed to log cache invalidation",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged",
		"entity_type", entityType,
		"entity_id", entityID,
		"action", action,
	)
}

// RecentEntries returns the most recent cache invalidation events for
// debugging. Limited to the specified count.
func (s *InvalidationLogStore) RecentEntries(limit int) ([]InvalidationLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, entity_type, entity_id, action, invalidated_at
		FROM cache_invalidation_log
		ORDER BY invalidated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query invalidation log: %w", err)
	}
	defer rows.Close()

	var entries []InvalidationLogEntry
	for rows.Next() {
		var e InvalidationLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan invalidation log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InvalidationLogEntry represents a single cache invalidation event.
type InvalidationLogEntry struct {
	ID            int64
	EntityType    string
	EntityID      uuid.UUID
	Action        string
	InvalidatedAt time.Time
}
