// Package config reads the server configuration from the environment.
package config

import "os"

// Config holds everything the embedding server needs at startup.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DBPath points at the sqlite file. Empty means in-memory stores.
	DBPath string
	// MigrationsDir overrides the embedded migration files when set.
	MigrationsDir string
	// SheetsURL is the lead webhook endpoint. Empty selects the built-in
	// endpoint; the literal "off" disables lead delivery.
	SheetsURL string
	// StaticDir serves the built frontend when set.
	StaticDir string
}

// FromEnv loads the configuration, applying defaults for anything unset.
func FromEnv() Config {
	return Config{
		Addr:          envOr("DETOX_ADDR", ":8080"),
		DBPath:        os.Getenv("DETOX_DB_PATH"),
		MigrationsDir: os.Getenv("DETOX_MIGRATIONS_DIR"),
		SheetsURL:     os.Getenv("DETOX_SHEETS_URL"),
		StaticDir:     os.Getenv("DETOX_STATIC_DIR"),
	}
}

// LeadsEnabled reports whether outbound lead delivery is configured on.
func (c Config) LeadsEnabled() bool {
	return c.SheetsURL != "off"
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
