// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"locpulse/internal/cache"
	"locpulse/internal/middleware"
	"locpulse/internal/models"
	"locpulse/internal/store"
)

// Reactions groups handlers for likes and dislikes on reviews. A
// same-value repeat makes no mutation and therefore no invalidation;
// the tally entry is deleted exactly when the stored reaction changes.
type Reactions struct {
	reactions   *store.ReactionStore
	reviews     *store.ReviewStore
	cache       cache.Cache
	invalidator *cache.Invalidator
}

// NewReactions creates a new Reactions handler group.
func NewReactions(reactions *store.ReactionStore, reviews *store.ReviewStore, c cache.Cache, inv *cache.Invalidator) *Reactions {
	return &Reactions{reactions: reactions, reviews: reviews, cache: c, invalidator: inv}
}

// reactionRequest is the payload for setting a reaction.
type reactionRequest struct {
	IsLike *bool `json:"is_like" validate:"required"`
}

// Tally returns the like/dislike counts of a review, read through the
// cache.
func (h *Reactions) Tally(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	review, ok := h.targetReview(w, r)
	if !ok {
		return
	}

	tally, err := cache.GetOrCompute(ctx, h.cache, cache.TallyKey(review.ID), cache.TallyTTL,
		func() (*models.Tally, error) {
			return h.reactions.TallyByReview(review.ID)
		})
	if err != nil {
		slog.Error("tally reactions failed", "error", err, "review_id", review.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, tally)
}

// Set records or flips the caller's reaction to a review.
func (h *Reactions) Set(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	review, ok := h.targetReview(w, r)
	if !ok {
		return
	}

	var req reactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	created, changed, err := h.reactions.Set(sess.UserID, review.ID, *req.IsLike)
	if err != nil {
		slog.Error("set reaction failed", "error", err, "review_id", review.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if !changed {
		respondDetail(w, http.StatusOK, "No change made.")
		return
	}

	action := "update"
	if created {
		action = "create"
	}
	h.invalidator.ReactionChanged(ctx, review.ID, review.LocationID, action)

	verb := "Dislike"
	if *req.IsLike {
		verb = "Like"
	}
	if created {
		respondDetail(w, http.StatusCreated, verb+" added successfully.")
		return
	}
	respondDetail(w, http.StatusOK, verb+" updated successfully.")
}

// Delete removes the caller's reaction to a review.
func (h *Reactions) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	review, ok := h.targetReview(w, r)
	if !ok {
		return
	}

	deleted, err := h.reactions.Delete(sess.UserID, review.ID)
	if err != nil {
		slog.Error("delete reaction failed", "error", err, "review_id", review.ID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if !deleted {
		respondDetail(w, http.StatusNotFound, "Reaction not found.")
		return
	}

	h.invalidator.ReactionChanged(ctx, review.ID, review.LocationID, "delete")
	respondDetail(w, http.StatusOK, "Reaction removed successfully.")
}

// targetReview loads the review named in the route, answering 404 when
// it does not exist.
func (h *Reactions) targetReview(w http.ResponseWriter, r *http.Request) (*models.Review, bool) {
	reviewID, ok := parseID(w, r, "id")
	if !ok {
		return nil, false
	}

	review, err := h.reviews.FindByID(reviewID)
	if err != nil {
		slog.Error("find review failed", "error", err, "id", reviewID)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return nil, false
	}
	if review == nil {
		respondDetail(w, http.StatusNotFound, "Review not found.")
		return nil, false
	}
	return review, true
}
