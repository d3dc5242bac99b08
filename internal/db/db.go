// Package db opens the SQLite database that backs the key-value store.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFileName is the database file name inside the missionctl home directory.
const DefaultFileName = "missionctl.db"

// Open opens (creating if needed) the database at path and brings its schema
// up to date. The special path ":memory:" opens a private in-memory database.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases from splitting per connection.
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil && path != ":memory:" {
		database.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
