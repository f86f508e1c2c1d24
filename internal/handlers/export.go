// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// export.go serves the location catalog as CSV or JSON. The CSV
// artifact is a single global cache entry; any location mutation
// deletes it.
package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"locpulse/internal/cache"
	"locpulse/internal/models"
)

// ExportCSV streams every location as CSV, read through the global
// export cache entry.
func (h *Locations) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := cache.GetOrCompute(ctx, h.cache, cache.ExportKey(), cache.ExportTTL,
		func() (string, error) {
			items, err := h.locations.List("", "")
			if err != nil {
				return "", err
			}
			return renderCSV(items)
		})
	if err != nil {
		slog.Error("export csv failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=locations.csv`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(payload))
}

// ExportJSON returns the catalog as JSON, honoring the same search and
// category filters (and cache entries) as the list view.
func (h *Locations) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	items, err := cache.GetOrCompute(ctx, h.cache, cache.ListKey(search, category), cache.ListTTL,
		func() ([]models.Location, error) {
			return h.locations.List(search, models.Category(category))
		})
	if err != nil {
		slog.Error("export json failed", "error", err)
		respondDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// renderCSV builds the CSV export body.
func renderCSV(items []models.Location) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"Title", "Description", "Address", "Category", "Average Rating", "Created At", "Updated At"}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	for _, l := range items {
		record := []string{
			l.Title,
			l.Description,
			l.Address,
			string(l.Category),
			fmt.Sprintf("%.1f", l.AverageRating),
			l.CreatedAt.Format(time.RFC3339),
			l.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
