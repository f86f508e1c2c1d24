// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. PostgreSQL is required (tests are skipped when it
// is unreachable); the cache and mail queue run in-process.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"locpulse/internal/cache"
	"locpulse/internal/database"
	"locpulse/internal/middleware"
	"locpulse/internal/models"
	"locpulse/internal/notify"
	"locpulse/internal/session"
	"locpulse/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "locpulse")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "locpulse")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Cache         *cache.Memory
	Queue         *notify.MemoryQueue
	Users         *store.UserStore
	LocationSt    *store.LocationStore
	ReviewSt      *store.ReviewStore
	ReactionSt    *store.ReactionStore
	Subscriptions *store.SubscriptionStore
	Locations     *Locations
	Reviews       *Reviews
	Reactions     *Reactions
	Subs          *Subscriptions
}

// newTestEnv creates a complete test environment. The cache is an
// in-process Memory instance so invalidation effects are observable
// without Valkey.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	mem := cache.NewMemory()
	queue := notify.NewMemoryQueue()

	users := store.NewUserStore(db)
	locationStore := store.NewLocationStore(db)
	reviewStore := store.NewReviewStore(db)
	reactionStore := store.NewReactionStore(db)
	subscriptionStore := store.NewSubscriptionStore(db)

	inv := cache.NewInvalidator(mem, nil)
	notifier := notify.NewNotifier(queue, subscriptionStore)

	return &testEnv{
		DB:            db,
		Cache:         mem,
		Queue:         queue,
		Users:         users,
		LocationSt:    locationStore,
		ReviewSt:      reviewStore,
		ReactionSt:    reactionStore,
		Subscriptions: subscriptionStore,
		Locations:     NewLocations(locationStore, mem, inv),
		Reviews:       NewReviews(reviewStore, locationStore, mem, inv, notifier),
		Reactions:     NewReactions(reactionStore, reviewStore, mem, inv),
		Subs:          NewSubscriptions(subscriptionStore, locationStore, mem, inv, notifier),
	}
}

// newUser creates a user and registers its removal, cascading reviews,
// reactions, and subscriptions.
func (e *testEnv) newUser(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.Users.Create(email, "handler-test-pass", "Handler Tester")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		e.DB.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// newLocation creates a location and registers its removal.
func (e *testEnv) newLocation(t *testing.T, title string, category models.Category) *models.Location {
	t.Helper()
	l, err := e.LocationSt.Create(&models.Location{
		Title:       title,
		Description: "Handler test location",
		Address:     "2 Handler Road",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("create location: %v", err)
	}
	t.Cleanup(func() {
		e.DB.Exec("DELETE FROM locations WHERE id = $1", l.ID)
	})
	return l
}

// newReview creates a review through the store.
func (e *testEnv) newReview(t *testing.T, userID, locationID uuid.UUID, rating int, comment string) *models.Review {
	t.Helper()
	r, err := e.ReviewSt.Create(&models.Review{
		UserID:     userID,
		LocationID: locationID,
		Rating:     rating,
		Comment:    comment,
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	return r
}

// sessionFor builds session data for the given user.
func sessionFor(u *models.User) *session.Data {
	return &session.Data{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

// withSession attaches session data to the request context.
func withSession(r *http.Request, sess *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, sess))
}

// withURLParam adds a chi URL parameter to a request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}
