// Package router sets up all HTTP routes and middleware chains for the
// locpulse API. It organizes routes into public auth endpoints and an
// authenticated API group.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"locpulse/internal/handlers"
	"locpulse/internal/middleware"
	"locpulse/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	sessionStore *session.Store,
	auth *handlers.Auth,
	locations *handlers.Locations,
	reviews *handlers.Reviews,
	reactions *handlers.Reactions,
	subscriptions *handlers.Subscriptions,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Credential endpoints are rate-limited per IP.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints — accessible without a session.
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/signup", auth.Signup)
			r.Post("/login", auth.Login)
			r.Post("/password-reset/request", auth.PasswordResetRequest)
			r.Post("/password-reset/confirm", auth.PasswordResetConfirm)
		})
		r.Post("/logout", auth.Logout)

		// Authenticated API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", locations.List)
				r.Post("/", locations.Create)
				r.Get("/export/csv", locations.ExportCSV)
				r.Get("/export/json", locations.ExportJSON)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", locations.Detail)
					r.Put("/", locations.Update)
					r.Delete("/", locations.Delete)

					r.Post("/subscribe", subscriptions.Subscribe)
					r.Post("/unsubscribe", subscriptions.Unsubscribe)

					r.Get("/reviews", reviews.ListByLocation)
					r.Post("/reviews", reviews.Create)
					r.Put("/reviews/{reviewID}", reviews.Update)
					r.Delete("/reviews/{reviewID}", reviews.Delete)
				})
			})

			r.Get("/reviews/feed", reviews.Feed)
			r.Route("/reviews/{id}/reactions", func(r chi.Router) {
				r.Get("/", reactions.Tally)
				r.Post("/", reactions.Set)
				r.Delete("/", reactions.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
