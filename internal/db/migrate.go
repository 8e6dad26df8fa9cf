package db

import (
	"bytes"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies the schema migrations in lexical order. Each script
// runs in its own transaction and the sqlite user_version pragma records how
// many have been applied, so running against an up-to-date database is a
// no-op. overrideDir replaces the embedded set when it exists.
func RunMigrations(db *sql.DB, overrideDir string) error {
	scripts, err := migrationScripts(overrideDir)
	if err != nil {
		return err
	}
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for i, script := range scripts {
		n := i + 1
		if n <= version {
			continue
		}
		if err := applyMigration(db, n, script); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, n int, script string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", n, err)
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %d: %w", n, err)
	}
	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, n)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", n, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", n, err)
	}
	return nil
}

func migrationScripts(overrideDir string) ([]string, error) {
	if overrideDir != "" {
		if _, err := os.Stat(overrideDir); err == nil {
			return readScripts(os.DirFS(overrideDir), ".")
		}
	}
	return readScripts(embeddedMigrations, "migrations")
}

// readScripts collects the non-empty .sql files of dir in name order.
func readScripts(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scripts := make([]string, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		scripts = append(scripts, string(data))
	}
	return scripts, nil
}
