// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"locpulse/internal/cache"
	"locpulse/internal/middleware"
	"locpulse/internal/models"
	"locpulse/internal/notify"
	"locpulse/internal/store"
)

// Reviews groups handlers for reviews of a location and the
// subscribed-reviews feed. Every mutation recomputes the location's
// average rating inside the store transaction, then invalidates, then
// (on creation only) notifies subscribers.
type Reviews struct {
	reviews     *store.ReviewStore
	locations   *store.LocationStore
	cache       cache.Cache
	invalidator *cache.Invalidator
	notifier    *notify.Notifier
}

// NewReviews creates a new Reviews handler group.
func NewReviews(reviews *store.ReviewStore, locations *store.LocationStore, c cache.Cache, inv *cache.Invalidator, notifier *notify.Notifier) *Reviews {
	return &Reviews{
		reviews:     reviews,
		locations:   locations,
		cache:       c,
		invalidator: inv,
		notifier:    notifier,
	}
}

// reviewRequest is the payload for creating or updating a review.
type reviewRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=0,max=10"`
	Comment string `json:"comment" validate:"required"`
}

// ListByLocation returns a location's reviews, read through the cache
// per (location, viewer).
func (h *Reviews) ListByLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	locationID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	location, err := h.locations.FindByID(locationID)
	if err != nil {
		slog.Error("find location failed", "error", err, "id", locationID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if location == nil {
		respondDetail(w, http.StatusNotFound, "Location not found.")
		return
	}

	items, err := cache.GetOrCompute(ctx, h.cache, cache.ReviewsKey(locationID, sess.UserID), cache.ReviewsTTL,
		func() ([]models.Review, error) {
			return h.reviews.ListByLocation(locationID)
		})
	if err != nil {
		slog.Error("list reviews failed", "error", err, "location_id", locationID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Feed returns reviews across every location the caller is subscribed
// to, read through the per-user feed cache entry.
func (h *Reviews) Feed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	items, err := cache.GetOrCompute(ctx, h.cache, cache.FeedKey(sess.UserID), cache.FeedTTL,
		func() ([]models.Review, error) {
			return h.reviews.ListForSubscriber(sess.UserID)
		})
	if err != nil {
		slog.Error("list subscribed reviews failed", "error", err, "user_id", sess.UserID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Create posts a new review on a location. The store recomputes the
// average rating in the same transaction; subscribers of the location
// are notified after the commit.
func (h *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	locationID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	location, err := h.locations.FindByID(locationID)
	if err != nil {
		slog.Error("find location failed", "error", err, "id", locationID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if location == nil {
		respondDetail(w, http.StatusNotFound, "Location not found.")
		return
	}

	created, err := h.reviews.Create(&models.Review{
		UserID:     sess.UserID,
		LocationID: locationID,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		slog.Error("create review failed", "error", err, "location_id", locationID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.ReviewChanged(ctx, created.ID, locationID, "create")
	h.notifier.ReviewCreated(ctx, location, created)

	respondJSON(w, http.StatusCreated, created)
}

// Update modifies the caller's own review. Subscribers are not
// notified on update.
func (h *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	review, ok := h.ownedReview(w, r, sess.UserID)
	if !ok {
		return
	}

	var req reviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	review.Rating = *req.Rating
	review.Comment = req.Comment

	if err := h.reviews.Update(review); err != nil {
		slog.Error("update review failed", "error", err, "id", review.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.ReviewChanged(ctx, review.ID, review.LocationID, "update")
	respondJSON(w, http.StatusOK, review)
}

// Delete removes the caller's own review.
func (h *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	review, ok := h.ownedReview(w, r, sess.UserID)
	if !ok {
		return
	}

	if err := h.reviews.Delete(review.ID, review.LocationID); err != nil {
		slog.Error("delete review failed", "error", err, "id", review.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.ReviewChanged(ctx, review.ID, review.LocationID, "delete")
	respondDetail(w, http.StatusOK, "Review deleted.")
}

// ownedReview loads the review from the route and checks that it
// belongs to the given location and caller.
func (h *Reviews) ownedReview(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*models.Review, bool) {
	locationID, ok := parseID(w, r, "id")
	if !ok {
		return nil, false
	}
	reviewID, ok := parseID(w, r, "reviewID")
	if !ok {
		return nil, false
	}

	review, err := h.reviews.FindByID(reviewID)
	if err != nil {
		slog.Error("find review failed", "error", err, "id", reviewID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	if review == nil || review.LocationID != locationID {
		respondDetail(w, http.StatusNotFound, "Review not found.")
		return nil, false
	}
	if review.UserID != userID {
		respondDetail(w, http.StatusForbidden, "You can only modify your own reviews.")
		return nil, false
	}
	return review, true
}
