// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"github.com/google/uuid"
)

// Reaction is a like or dislike on a review. A user holds at most one
// reaction per review (unique on user_id + review_id); it may be
// flipped between like and dislike.
type Reaction struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	ReviewID uuid.UUID `json:"review_id"`
	IsLike   bool      `json:"is_like"`
}

// Tally is the aggregate like/dislike count for a review.
type Tally struct {
	Likes    int `json:"likes_count"`
	Dislikes int `json:"dislikes_count"`
}
