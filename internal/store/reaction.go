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

// ReactionStore handles like/dislike operations on reviews.
type ReactionStore struct {
	db *sql.DB
}

// NewReactionStore creates a new ReactionStore with the given database connection.
func NewReactionStore(db *sql.DB) *ReactionStore {
	return &ReactionStore{db: db}
}

// Find retrieves a user's reaction to a review. Returns nil if the
// user has not reacted.
func (s *ReactionStore) Find(userID, reviewID uuid.UUID) (*models.Reaction, error) {
	r := &models.Reaction{}
	err := s.db.QueryRow(`
		SELECT id, user_id, review_id, is_like
		FROM reactions WHERE user_id = $1 AND review_id = $2
	`, userID, reviewID).Scan(&r.ID, &r.UserID, &r.ReviewID, &r.IsLike)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find reaction: %w", err)
	}
	return r, nil
}

// Set records a user's like or dislike on a review, flipping an
// existing reaction when the value differs. Returns whether a row was
// created and whether anything changed; a same-value repeat is a no-op
// so callers can skip invalidation.
func (s *ReactionStore) Set(userID, reviewID uuid.UUID, isLike bool) (created, changed bool, err error) {
	existing, err := s.Find(userID, reviewID)
	if err != nil {
		return false, false, err
	}

	if existing == nil {
		_, err := s.db.Exec(`
			INSERT INTO reactions (user_id, review_id, is_like)
			VALUES ($1, $2, $3)
		`, userID, reviewID, isLike)
		if err != nil {
			return false, false, fmt.Errorf("create reaction: %w", err)
		}
		return true, true, nil
	}

	if existing.IsLike == isLike {
		return false, false, nil
	}

	if _, err := s.db.Exec(`
		UPDATE reactions SET is_like = $1 WHERE id = $2
	`, isLike, existing.ID); err != nil {
		return false, false, fmt.Errorf("flip reaction: %w", err)
	}
	return false, true, nil
}

// Delete removes a user's reaction to a review. Returns false if no
// reaction existed.
func (s *ReactionStore) Delete(userID, reviewID uuid.UUID) (bool, error) {
	result, err := s.db.Exec(`
		DELETE FROM reactions WHERE user_id = $1 AND review_id = $2
	`, userID, reviewID)
	if err != nil {
		return false, fmt.Errorf("delete reaction: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete reaction rows: %w", err)
	}
	return n > 0, nil
}

// TallyByReview counts the likes and dislikes on a review.
func (s *ReactionStore) TallyByReview(reviewID uuid.UUID) (*models.Tally, error) {
	t := &models.Tally{}
	err := s.db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE is_like),
		       COUNT(*) FILTER (WHERE NOT is_like)
		FROM reactions WHERE review_id = $1
	`, reviewID).Scan(&t.Likes, &t.Dislikes)
	if err != nil {
		return nil, fmt.Errorf("tally reactions: %w", err)
	}
	return t, nil
}
