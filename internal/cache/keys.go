// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// keys.go defines the cache key scheme. Every cached query family has
// its own namespace prefix so keys never collide across entity kinds
// and so prefix deletion can target a whole family at once.
package cache

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TTLs per key family. Short enough that a missed invalidation
// converges within one window.
const (
	ListTTL         = 5 * time.Minute
	DetailTTL       = 5 * time.Minute
	ReviewsTTL      = 15 * time.Minute
	FeedTTL         = 15 * time.Minute
	SubscriptionTTL = time.Hour
	ExportTTL       = 10 * time.Minute
	TallyTTL        = 5 * time.Minute
)

// ListPrefix is the namespace shared by every cached location list
// view, one entry per (search, category) combination.
const ListPrefix = "locations:list:"

// ListKey returns the key for the location list filtered by search
// text and category. Identical parameters always yield the same key.
func ListKey(search, category string) string {
	return fmt.Sprintf("%s%s:%s", ListPrefix, search, category)
}

// DetailKey returns the key for a single location's detail view.
func DetailKey(locationID uuid.UUID) string {
	return fmt.Sprintf("location:detail:%s", locationID)
}

// ReviewsPrefix returns the namespace for every cached review listing
// of a location, across all viewer variants.
func ReviewsPrefix(locationID uuid.UUID) string {
	return fmt.Sprintf("reviews:location:%s", locationID)
}

// ReviewsKey returns the key for a location's reviews as seen by a
// specific viewer. Viewer variants share the ReviewsPrefix namespace.
func ReviewsKey(locationID, viewerID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s", ReviewsPrefix(locationID), viewerID)
}

// FeedKey returns the key for a user's subscribed-reviews feed.
func FeedKey(userID uuid.UUID) string {
	return fmt.Sprintf("reviews:user:%s:subscribed", userID)
}

// SubscriptionKey returns the key for the subscription-status flag of
// a (user, location) pair.
func SubscriptionKey(userID, locationID uuid.UUID) string {
	return fmt.Sprintf("subscription:%s:%s", userID, locationID)
}

// ExportKey returns the key for the single global CSV export artifact.
func ExportKey() string {
	return "locations:export:csv"
}

// TallyKey returns the key for a review's like/dislike tally.
func TallyKey(reviewID uuid.UUID) string {
	return fmt.Sprintf("review:%s:reactions", reviewID)
}
