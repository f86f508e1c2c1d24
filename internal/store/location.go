// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"locpulse/internal/models"
)

// LocationStore handles all location-related database operations,
// including maintenance of the derived average_rating column.
type LocationStore struct {
	db *sql.DB
}

// NewLocationStore creates a new LocationStore with the given database connection.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

// List returns locations matched by optional title substring search and
// category filter, ordered by creation date descending. Empty
// parameters match everything.
func (s *LocationStore) List(search string, category models.Category) ([]models.Location, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, address, category, average_rating, created_at, updated_at
		FROM locations
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
	`, search, string(category))
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var items []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.Address, &l.Category,
			&l.AverageRating, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// FindByID retrieves a location by its UUID. Returns nil if not found.
func (s *LocationStore) FindByID(id uuid.UUID) (*models.Location, error) {
	l := &models.Location{}
	err := s.db.QueryRow(`
		SELECT id, title, description, address, category, average_rating, created_at, updated_at
		FROM locations WHERE id = $1
	`, id).Scan(
		&l.ID, &l.Title, &l.Description, &l.Address, &l.Category,
		&l.AverageRating, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return l, nil
}

// Create inserts a new location and returns it with the generated ID.
// A new location has no reviews, so average_rating starts at 0.
func (s *LocationStore) Create(l *models.Location) (*models.Location, error) {
	result := &models.Location{}
	err := s.db.QueryRow(`
		INSERT INTO locations (title, description, address, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, address, category, average_rating, created_at, updated_at
	`, l.Title, l.Description, l.Address, l.Category).Scan(
		&result.ID, &result.Title, &result.Description, &result.Address,
		&result.Category, &result.AverageRating, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return result, nil
}

// Update modifies an existing location's editable fields.
func (s *LocationStore) Update(l *models.Location) error {
	_, err := s.db.Exec(`
		UPDATE locations SET
			title = $1, description = $2, address = $3, category = $4,
			updated_at = NOW()
		WHERE id = $5
	`, l.Title, l.Description, l.Address, l.Category, l.ID)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete removes a location by ID. Reviews, reactions, and
// subscriptions cascade in the database.
func (s *LocationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

// RecomputeAverageRating recalculates the derived average_rating from
// the location's current review set: the mean rating rounded to one
// decimal, or 0.0 when no reviews exist.
func (s *LocationStore) RecomputeAverageRating(locationID uuid.UUID) error {
	return recomputeAverageRating(s.db, locationID)
}

// execer is satisfied by both *sql.DB and *sql.Tx, so the recompute
// can join a review mutation's transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// recomputeAverageRating persists the mean review rating for a
// location. Review mutations call this on their own transaction so no
// reader observes a stale average after the write commits.
func recomputeAverageRating(db execer, locationID uuid.UUID) error {
	_, err := db.Exec(`
		UPDATE locations SET
			average_rating = COALESCE((
				SELECT ROUND(AVG(rating)::numeric, 1)
				FROM reviews WHERE location_id = $1
			), 0),
			updated_at = NOW()
		WHERE id = $1
	`, locationID)
	if err != nil {
		return fmt.Errorf("recompute average rating: %w", err)
	}
	return nil
}
