// Package store provides SQLite persistence for items, their template
// documents and recorded logs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrItemNotFound is returned when no item has the requested id.
var ErrItemNotFound = errors.New("item not found")

// ErrLogNotFound is returned when no log has the requested id.
var ErrLogNotFound = errors.New("log not found")

// Store is the SQLite-backed persistence layer.
type Store struct {
	db *sql.DB
}

// Open creates a SQLite connection at dbPath and sets up the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// Creates the file if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	// Categories are items without a parent; item_style holds the template
	// document of the item.
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		parent_id INTEGER REFERENCES items(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		short_name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		item_style TEXT NOT NULL DEFAULT '',
		item_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_id INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		done_at TEXT NOT NULL,
		comment TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id);
	CREATE INDEX IF NOT EXISTS idx_logs_done_at ON logs(done_at);
	CREATE INDEX IF NOT EXISTS idx_logs_item ON logs(item_id);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}
