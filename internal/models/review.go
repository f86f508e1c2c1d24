// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating and comment on a location. Rating is an
// integer between 0 and 10 inclusive.
type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	LocationID uuid.UUID `json:"location_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Denormalized fields embedded in cached review payloads.
	AuthorEmail  string `json:"author_email,omitempty"`
	LikeCount    int    `json:"likes_count"`
	DislikeCount int    `json:"dislikes_count"`
}
