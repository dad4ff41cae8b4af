// Package db persists extracted books and their songs to a libsql database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/mbarreto/hymnbook/internal/utils"
)

// Manager wraps the database handle. Construct one explicitly at startup and
// pass it to the components that need persistence.
type Manager struct {
	db *sql.DB
}

// NewManager opens the database configured through TURSO_DATABASE_URL and
// TURSO_AUTH_TOKEN and verifies the connection.
func NewManager() (*Manager, error) {
	env, err := utils.LoadEnv([]string{"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"})
	if err != nil {
		return nil, fmt.Errorf("failed to load db env: %w", err)
	}
	url := fmt.Sprintf("%s?authToken=%s", env["TURSO_DATABASE_URL"], env["TURSO_AUTH_TOKEN"])

	database, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Manager{db: database}, nil
}

// InitSchema creates the books and songs tables when missing.
func (m *Manager) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			title TEXT,
			total_lines INTEGER,
			extracted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			number TEXT,
			title TEXT,
			verses TEXT,
			chorus TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database connection safely.
func (m *Manager) Close() {
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
