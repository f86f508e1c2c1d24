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

// ReviewStore handles all review-related database operations. Every
// mutation runs in a transaction together with the average-rating
// recompute for the affected location.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// reviewColumns selects a review joined with its author's email and
// denormalized like/dislike counts.
const reviewColumns = `
	SELECT r.id, r.user_id, r.location_id, r.rating, r.comment, r.created_at, r.updated_at,
	       u.email,
	       COUNT(x.id) FILTER (WHERE x.is_like)     AS likes,
	       COUNT(x.id) FILTER (WHERE NOT x.is_like) AS dislikes
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	LEFT JOIN reactions x ON x.review_id = r.id
`

// ListByLocation returns a location's reviews with author email and
// reaction counts, newest first.
func (s *ReviewStore) ListByLocation(locationID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(reviewColumns+`
		WHERE r.location_id = $1
		GROUP BY r.id, u.email
		ORDER BY r.created_at DESC
	`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by location: %w", err)
	}
	return scanReviews(rows)
}

// ListForSubscriber returns reviews across every location the user is
// subscribed to, newest first. Backs the subscribed-reviews feed.
func (s *ReviewStore) ListForSubscriber(userID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(reviewColumns+`
		WHERE r.location_id IN (
			SELECT location_id FROM subscriptions WHERE user_id = $1
		)
		GROUP BY r.id, u.email
		ORDER BY r.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed reviews: %w", err)
	}
	return scanReviews(rows)
}

// FindByID retrieves a review by its UUID. Returns nil if not found.
func (s *ReviewStore) FindByID(id uuid.UUID) (*models.Review, error) {
	r := &models.Review{}
	err := s.db.QueryRow(reviewColumns+`
		WHERE r.id = $1
		GROUP BY r.id, u.email
	`, id).Scan(
		&r.ID, &r.UserID, &r.LocationID, &r.Rating, &r.Comment,
		&r.CreatedAt, &r.UpdatedAt, &r.AuthorEmail, &r.LikeCount, &r.DislikeCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	return r, nil
}

// Create inserts a new review and recomputes the location's average
// rating in the same transaction.
func (s *ReviewStore) Create(r *models.Review) (*models.Review, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin review create: %w", err)
	}
	defer tx.Rollback()

	result := &models.Review{}
	err = tx.QueryRow(`
		INSERT INTO reviews (user_id, location_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, location_id, rating, comment, created_at, updated_at
	`, r.UserID, r.LocationID, r.Rating, r.Comment).Scan(
		&result.ID, &result.UserID, &result.LocationID, &result.Rating,
		&result.Comment, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := recomputeAverageRating(tx, r.LocationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review create: %w", err)
	}
	return result, nil
}

// Update modifies a review's rating and comment and recomputes the
// location's average rating in the same transaction.
func (s *ReviewStore) Update(r *models.Review) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin review update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE reviews SET rating = $1, comment = $2, updated_at = NOW()
		WHERE id = $3
	`, r.Rating, r.Comment, r.ID); err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	if err := recomputeAverageRating(tx, r.LocationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review update: %w", err)
	}
	return nil
}

// Delete removes a review and recomputes the location's average rating
// in the same transaction.
func (s *ReviewStore) Delete(id, locationID uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin review delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if err := recomputeAverageRating(tx, locationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review delete: %w", err)
	}
	return nil
}

// scanReviews drains a review query result set.
func scanReviews(rows *sql.Rows) ([]models.Review, error) {
	defer rows.Close()

	var items []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.LocationID, &r.Rating, &r.Comment,
			&r.CreatedAt, &r.UpdatedAt, &r.AuthorEmail, &r.LikeCount, &r.DislikeCount,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}
