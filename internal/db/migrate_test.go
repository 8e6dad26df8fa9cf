package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func openMigrationDB(t *testing.T) *sql.DB {
	t.Helper()
	sqliteDB, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqliteDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqliteDB.Close() })
	return sqliteDB
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	sqliteDB := openMigrationDB(t)
	if err := RunMigrations(sqliteDB, ""); err != nil {
		t.Fatalf("first run: %v", err)
	}

	var version int
	if err := sqliteDB.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("user_version = %d, want 1", version)
	}

	if _, err := sqliteDB.Exec(
		`INSERT INTO records (id, email, phone, respondent_name, answers, score_total, risk_level, created_at, consent)
		 VALUES ('R1', 'a@b.c', '', '', '[]', 0, 'BAIXA', '2025-11-03T12:00:00.000000000Z', 1)`); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	// a second run must not re-apply the schema or touch existing rows
	if err := RunMigrations(sqliteDB, ""); err != nil {
		t.Fatalf("second run: %v", err)
	}
	var count int
	if err := sqliteDB.QueryRow(`SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		t.Fatalf("count records: %v", err)
	}
	if count != 1 {
		t.Fatalf("records after re-run = %d, want 1", count)
	}
}

func TestRunMigrationsDirOverride(t *testing.T) {
	dir := t.TempDir()
	script := []byte(`CREATE TABLE override_only (id TEXT PRIMARY KEY);`)
	if err := os.WriteFile(filepath.Join(dir, "0001_override.sql"), script, 0o644); err != nil {
		t.Fatalf("write override migration: %v", err)
	}

	sqliteDB := openMigrationDB(t)
	if err := RunMigrations(sqliteDB, dir); err != nil {
		t.Fatalf("run with override: %v", err)
	}

	if _, err := sqliteDB.Exec(`INSERT INTO override_only (id) VALUES ('x')`); err != nil {
		t.Fatalf("override schema missing: %v", err)
	}
	// the embedded schema must not have been applied alongside
	if _, err := sqliteDB.Exec(`SELECT COUNT(1) FROM records`); err == nil {
		t.Fatal("embedded schema applied despite override dir")
	}
}

func TestRunMigrationsMissingOverrideFallsBack(t *testing.T) {
	sqliteDB := openMigrationDB(t)
	if err := RunMigrations(sqliteDB, filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatalf("run with absent dir: %v", err)
	}
	var count int
	if err := sqliteDB.QueryRow(`SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		t.Fatalf("embedded schema not applied: %v", err)
	}
}
