// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"locpulse/internal/cache"
	"locpulse/internal/models"
	"locpulse/internal/store"
)

// Locations groups handlers for the location catalog. Reads go through
// the cache; every mutation invalidates the affected entries after its
// database write commits.
type Locations struct {
	locations   *store.LocationStore
	cache       cache.Cache
	invalidator *cache.Invalidator
}

// NewLocations creates a new Locations handler group.
func NewLocations(locations *store.LocationStore, c cache.Cache, inv *cache.Invalidator) *Locations {
	return &Locations{locations: locations, cache: c, invalidator: inv}
}

// locationRequest is the payload for creating or updating a location.
type locationRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Address     string `json:"address" validate:"required,max=255"`
	Category    string `json:"category" validate:"required,oneof=restaurant park museum cafe theater shop other"`
}

// List returns locations filtered by search text and category. The
// (search, category) result set is the cached snapshot; the optional
// min_rating/max_rating bounds are applied after it, so every rating
// window shares one cache entry per filter combination.
func (h *Locations) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	search := q.Get("search")
	category := q.Get("category")

	minRating, ok := parseRatingBound(w, q.Get("min_rating"), "min_rating", 0)
	if !ok {
		return
	}
	maxRating, ok := parseRatingBound(w, q.Get("max_rating"), "max_rating", 10)
	if !ok {
		return
	}

	items, err := cache.GetOrCompute(ctx, h.cache, cache.ListKey(search, category), cache.ListTTL,
		func() ([]models.Location, error) {
			return h.locations.List(search, models.Category(category))
		})
	if err != nil {
		slog.Error("list locations failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	filtered := make([]models.Location, 0, len(items))
	for _, l := range items {
		if l.AverageRating >= minRating && l.AverageRating <= maxRating {
			filtered = append(filtered, l)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}

// Detail returns a single location, read through the cache.
func (h *Locations) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	location, err := cache.GetOrCompute(ctx, h.cache, cache.DetailKey(id), cache.DetailTTL,
		func() (*models.Location, error) {
			l, err := h.locations.FindByID(id)
			if err != nil {
				return nil, err
			}
			if l == nil {
				return nil, errNotFound
			}
			return l, nil
		})
	if errors.Is(err, errNotFound) {
		respondDetail(w, http.StatusNotFound, "Location not found.")
		return
	}
	if err != nil {
		slog.Error("find location failed", "error", err, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, location)
}

// Create adds a new location.
func (h *Locations) Create(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	created, err := h.locations.Create(&models.Location{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Category:    models.Category(req.Category),
	})
	if err != nil {
		slog.Error("create location failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.LocationChanged(r.Context(), created.ID, "create")
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an existing location.
func (h *Locations) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req locationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := checkStruct(req); fields != nil {
		respondFieldErrors(w, fields)
		return
	}

	location, err := h.locations.FindByID(id)
	if err != nil {
		slog.Error("find location failed", "error", err, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if location == nil {
		respondDetail(w, http.StatusNotFound, "Location not found.")
		return
	}

	location.Title = req.Title
	location.Description = req.Description
	location.Address = req.Address
	location.Category = models.Category(req.Category)

	if err := h.locations.Update(location); err != nil {
		slog.Error("update location failed", "error", err, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.LocationChanged(r.Context(), id, "update")
	respondJSON(w, http.StatusOK, location)
}

// Delete removes a location with all its reviews and subscriptions.
func (h *Locations) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	location, err := h.locations.FindByID(id)
	if err != nil {
		slog.Error("find location failed", "error", err, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if location == nil {
		respondDetail(w, http.StatusNotFound, "Location not found.")
		return
	}

	if err := h.locations.Delete(id); err != nil {
		slog.Error("delete location failed", "error", err, "id", id)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	h.invalidator.LocationChanged(r.Context(), id, "delete")
	respondDetail(w, http.StatusOK, "Location deleted.")
}

// parseID extracts a UUID route parameter, responding 400 on garbage.
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid ID.")
		return uuid.Nil, false
	}
	return id, true
}

// parseRatingBound parses an optional rating filter bound, falling back
// to the given default when absent.
func parseRatingBound(w http.ResponseWriter, raw, field string, fallback float64) (float64, bool) {
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondFieldErrors(w, map[string]string{field: "Must be a number."})
		return 0, false
	}
	return v, true
}
