// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// invalidator.go is the cache invalidation coordinator. Mutation
// handlers call it after their database write commits; it deletes every
// cache entry the mutation could have staled. Deleting an absent key is
// a no-op, so invoking a trigger twice leaves the cache in the same
// state as invoking it once.
package cache

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// InvalidationLog records invalidation events for audit and debugging.
// Implemented by store.InvalidationLogStore; may be nil.
type InvalidationLog interface {
	Record(entityType string, entityID uuid.UUID, action string)
}

// Invalidator deletes stale cache entries after entity mutations. The
// pattern capability is resolved once at construction: when the given
// cache does not support prefix deletion, those steps are skipped and
// consistency is restored by each entry's TTL expiring naturally.
type Invalidator struct {
	cache    Cache
	patterns PatternCache // nil when the backend lacks prefix deletion
	log      InvalidationLog
}

// NewInvalidator creates an invalidation coordinator over the given
// cache. log may be nil to disable the audit trail.
func NewInvalidator(c Cache, log InvalidationLog) *Invalidator {
	inv := &Invalidator{cache: c, log: log}
	if pc, ok := c.(PatternCache); ok {
		inv.patterns = pc
	} else {
		slog.Warn("cache backend lacks prefix deletion; list invalidation degrades to TTL expiry")
	}
	return inv
}

// LocationChanged reacts to a location create, update, or delete. The
// detail view, every list view, and the export artifact may embed the
// location. A delete additionally orphans the location's cached review
// listings.
func (i *Invalidator) LocationChanged(ctx context.Context, locationID uuid.UUID, action string) {
	i.cache.Delete(ctx, DetailKey(locationID))
	i.deleteByPrefix(ctx, ListPrefix)
	i.cache.Delete(ctx, ExportKey())
	if action == "delete" {
		i.deleteByPrefix(ctx, ReviewsPrefix(locationID))
	}
	i.record("location", locationID, action)
}

// ReviewChanged reacts to a review create, update, or delete on the
// given location. Every cached review listing of the location (all
// viewer variants), the location detail, every list view, and the
// export artifact embed the now-stale average rating.
func (i *Invalidator) ReviewChanged(ctx context.Context, reviewID, locationID uuid.UUID, action string) {
	i.deleteByPrefix(ctx, ReviewsPrefix(locationID))
	i.cache.Delete(ctx, DetailKey(locationID))
	i.deleteByPrefix(ctx, ListPrefix)
	i.cache.Delete(ctx, ExportKey())
	i.record("review", reviewID, action)
}

// ReactionChanged reacts to a like/dislike create, flip, or delete.
// The review's tally and the location's cached review listings (which
// embed denormalized counts) are stale.
func (i *Invalidator) ReactionChanged(ctx context.Context, reviewID, locationID uuid.UUID, action string) {
	i.cache.Delete(ctx, TallyKey(reviewID))
	i.deleteByPrefix(ctx, ReviewsPrefix(locationID))
	i.record("reaction", reviewID, action)
}

// SubscriptionChanged reacts to a subscribe or unsubscribe. The
// subscription-status flag for the pair and the user's subscribed
// feed are stale.
func (i *Invalidator) SubscriptionChanged(ctx context.Context, userID, locationID uuid.UUID, action string) {
	i.cache.Delete(ctx, SubscriptionKey(userID, locationID))
	i.cache.Delete(ctx, FeedKey(userID))
	i.record("subscription", locationID, action)
}

// deleteByPrefix performs a bulk deletion when the backend supports it,
// otherwise skips silently. It never returns an error to the caller.
func (i *Invalidator) deleteByPrefix(ctx context.Context, prefix string) {
	if i.patterns == nil {
		slog.Debug("skipping prefix invalidation, backend unsupported", "prefix", prefix)
		return
	}
	i.patterns.DeleteByPrefix(ctx, prefix)
}

func (i *Invalidator) record(entityType string, entityID uuid.UUID, action string) {
	if i.log != nil {
		i.log.Record(entityType, entityID, action)
	}
}
