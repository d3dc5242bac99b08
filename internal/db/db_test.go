package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestOpen_FreshInstall(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	var version int
	if err := database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Errorf("version = %d, want %d", version, migrations[len(migrations)-1].Version)
	}

	if _, err := database.Exec("INSERT INTO kv_entries (key, value) VALUES ('k', 'v')"); err != nil {
		t.Errorf("kv_entries not usable: %v", err)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	database.Close()

	// Reopening an existing file runs the migration path, which must be a no-op.
	database, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	database.Close()
}

func TestRunMigrations_UpgradesV1(t *testing.T) {
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	database.SetMaxOpenConns(1)
	defer database.Close()

	// A database created before updated_at existed.
	if err := createVersionTable(database); err != nil {
		t.Fatal(err)
	}
	tx, err := database.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if err := migrationV1(tx); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
		t.Fatal(err)
	}

	if err := InitSchema(database); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	if _, err := database.Exec("INSERT INTO kv_entries (key, value, updated_at) VALUES ('k', 'v', CURRENT_TIMESTAMP)"); err != nil {
		t.Errorf("updated_at column missing after migration: %v", err)
	}
}
