// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a user to a location they want email updates
// about. A user subscribes to a location at most once (unique on
// user_id + location_id).
type Subscription struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	LocationID uuid.UUID `json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Subscriber is a subscription joined with the subscriber's contact
// address, used when notifying about new reviews.
type Subscriber struct {
	UserID uuid.UUID
	Email  string
}
