package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a demo
// user and a couple of locations to browse. No-op if users exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
	`, "demo@locpulse.local", string(hash), "Demo")
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO locations (title, description, address, category) VALUES
		('Central Park', 'A large public park in the city center.', '59th St & 5th Ave', 'park'),
		('City Museum of Art', 'Permanent and visiting art collections.', '12 Museum Row', 'museum'),
		('Blue Door Cafe', 'Small specialty coffee shop.', '4 Harbor Lane', 'cafe')
	`)
	if err != nil {
		return fmt.Errorf("seed insert locations: %w", err)
	}

	slog.Info("database seeded with demo data",
		"email", "demo@locpulse.local",
		"password", "demo",
	)

	return nil
}
