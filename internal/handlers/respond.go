// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API: locations, reviews,
// reactions, subscriptions, exports, and account management.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// errNotFound marks a compute function's lookup miss so the
// read-through layer never caches a not-found result.
var errNotFound = errors.New("not found")

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondDetail writes a single-message error or status body, matching
// the {"detail": ...} envelope used across the API.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

// respondFieldErrors writes a 422 with a per-field error map.
func respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
}

// decodeJSON parses the request body into dst. Responds with a 400 and
// returns false on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}
