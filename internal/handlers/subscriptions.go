// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"locpulse/internal/cache"
	"locpulse/internal/middleware"
	"locpulse/internal/notify"
	"locpulse/internal/store"
)

// Subscriptions groups handlers for subscribing to a location's review
// updates. The subscription-status flag is cached; subscribing enqueues
// a one-time confirmation email.
type Subscriptions struct {
	subscriptions *store.SubscriptionStore
	locations     *store.LocationStore
	cache         cache.Cache
	invalidator   *cache.Invalidator
	notifier      *notify.Notifier
}

// NewSubscriptions creates a new Subscriptions handler group.
func NewSubscriptions(subs *store.SubscriptionStore, locations *store.LocationStore, c cache.Cache, inv *cache.Invalidator, notifier *notify.Notifier) *Subscriptions {
	return &Subscriptions{
		subscriptions: subs,
		locations:     locations,
		cache:         c,
		invalidator:   inv,
		notifier:      notifier,
	}
}

// Subscribe subscribes the caller to a location. The cached status
// flag short-circuits repeat subscribes without a database roundtrip.
func (h *Subscriptions) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	locationID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	statusKey := cache.SubscriptionKey(sess.UserID, locationID)
	if _, cached := h.cache.Get(ctx, statusKey); cached {
		respondDetail(w, http.StatusBadRequest, "Already subscribed.")
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

	existing, err := h.subscriptions.Find(sess.UserID, locationID)
	if err != nil {
		slog.Error("find subscription failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if existing != nil {
		respondDetail(w, http.StatusBadRequest, "Already subscribed.")
		return
	}

	if _, err := h.subscriptions.Create(sess.UserID, locationID); err != nil {
		slog.Error("create subscription failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	// Invalidate first so the feed entry can't survive the write, then
	// repopulate the status flag.
	h.invalidator.SubscriptionChanged(ctx, sess.UserID, locationID, "create")
	h.cache.Set(ctx, statusKey, []byte("1"), cache.SubscriptionTTL)

	h.notifier.SubscriptionCreated(ctx, sess.Email, location.Title)

	respondDetail(w, http.StatusCreated, "Subscribed successfully.")
}

// Unsubscribe removes the caller's subscription to a location.
func (h *Subscriptions) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	locationID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.subscriptions.Delete(sess.UserID, locationID)
	if err != nil {
		slog.Error("delete subscription failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if !deleted {
		respondDetail(w, http.StatusBadRequest, "Not subscribed to this location.")
		return
	}

	h.invalidator.SubscriptionChanged(ctx, sess.UserID, locationID, "delete")
	respondDetail(w, http.StatusOK, "Unsubscribed successfully.")
}
