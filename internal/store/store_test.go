// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"locpulse/internal/database"
	"locpulse/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "locpulse")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "locpulse")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a user and registers its removal. Reviews,
// reactions, and subscriptions cascade on user deletion.
func testUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	u, err := NewUserStore(db).Create(email, "test-password-123", "Test User")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testLocation creates a location and registers its removal. Reviews
// and subscriptions cascade on location deletion.
func testLocation(t *testing.T, db *sql.DB, title string, category models.Category) *models.Location {
	t.Helper()

	l, err := NewLocationStore(db).Create(&models.Location{
		Title:       title,
		Description: "A place used in tests",
		Address:     "1 Test Street",
		Category:    category,
	})
	if err != nil {
		t.Fatalf("create test location: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM locations WHERE id = $1", l.ID)
	})
	return l
}

// testReview creates a review through the store, exercising the
// aggregate recompute path.
func testReview(t *testing.T, db *sql.DB, userID, locationID uuid.UUID, rating int, comment string) *models.Review {
	t.Helper()

	r, err := NewReviewStore(db).Create(&models.Review{
		UserID:     userID,
		LocationID: locationID,
		Rating:     rating,
		Comment:    comment,
	})
	if err != nil {
		t.Fatalf("create test review: %v", err)
	}
	return r
}

// locationRating reads the stored average rating directly.
func locationRating(t *testing.T, db *sql.DB, locationID uuid.UUID) float64 {
	t.Helper()

	var rating float64
	err := db.QueryRow(
		"SELECT average_rating FROM locations WHERE id = $1", locationID,
	).Scan(&rating)
	if err != nil {
		t.Fatalf("read average rating: %v", err)
	}
	return rating
}
