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

// SubscriptionStore handles location subscription operations.
type SubscriptionStore struct {
	db *sql.DB
}

// NewSubscriptionStore creates a new SubscriptionStore with the given database connection.
func NewSubscriptionStore(db *sql.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

// Find retrieves the subscription of a user to a location. Returns nil
// if the user is not subscribed.
func (s *SubscriptionStore) Find(userID, locationID uuid.UUID) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := s.db.QueryRow(`
		SELECT id, user_id, location_id, created_at
		FROM subscriptions WHERE user_id = $1 AND location_id = $2
	`, userID, locationID).Scan(&sub.ID, &sub.UserID, &sub.LocationID, &sub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

// Create subscribes a user to a location.
func (s *SubscriptionStore) Create(userID, locationID uuid.UUID) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := s.db.QueryRow(`
		INSERT INTO subscriptions (user_id, location_id)
		VALUES ($1, $2)
		RETURNING id, user_id, location_id, created_at
	`, userID, locationID).Scan(&sub.ID, &sub.UserID, &sub.LocationID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

// Delete removes a user's subscription to a location. Returns false if
// no subscription existed.
func (s *SubscriptionStore) Delete(userID, locationID uuid.UUID) (bool, error) {
	result, err := s.db.Exec(`
		DELETE FROM subscriptions WHERE user_id = $1 AND location_id = $2
	`, userID, locationID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subscription rows: %w", err)
	}
	return n > 0, nil
}

// ListSubscribers returns every subscriber of a location with their
// contact address, for new-review notifications.
func (s *SubscriptionStore) ListSubscribers(locationID uuid.UUID) ([]models.Subscriber, error) {
	rows, err := s.db.Query(`
		SELECT s.user_id, u.email
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.location_id = $1
		ORDER BY s.created_at ASC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.UserID, &sub.Email); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
