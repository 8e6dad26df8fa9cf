package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/filhoindependente/detoxquiz/internal/api"
	"github.com/filhoindependente/detoxquiz/internal/config"
	dbstore "github.com/filhoindependente/detoxquiz/internal/db"
	"github.com/filhoindependente/detoxquiz/internal/leads"
	appmw "github.com/filhoindependente/detoxquiz/internal/middleware"
	"github.com/filhoindependente/detoxquiz/internal/quiz"
	"github.com/filhoindependente/detoxquiz/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	drafts, records := openStores(cfg.DBPath, cfg.MigrationsDir)

	var notifier *leads.Notifier
	if cfg.LeadsEnabled() {
		notifier = leads.NewNotifier(cfg.SheetsURL, nil)
	}

	flow := quiz.NewFlow(drafts, records)
	rt := api.NewRouter(flow, records, notifier)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Logger, chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(appmw.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(appmw.NoStore)
		r.Mount("/", rt.Routes())
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "name": quiz.BrandName})
	})

	// Serve the built frontend when configured (fullstack image).
	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	log.Printf("detoxquiz server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStores binds the persistence ports: sqlite when a path is configured,
// in-memory otherwise (state then lasts only for the process lifetime).
func openStores(sqlitePath, migrationsDir string) (quiz.DraftStore, quiz.RecordStore) {
	if sqlitePath == "" {
		log.Printf("DETOX_DB_PATH not set; using in-memory stores")
		return storage.NewMemoryDraftStore(), storage.NewMemoryRecordStore()
	}
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		log.Fatalf("create sqlite dir: %v", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(sqlitePath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	if err := dbstore.RunMigrations(sqliteDB, migrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	store, err := dbstore.NewSQLiteStore(sqliteDB)
	if err != nil {
		log.Fatalf("init sqlite store: %v", err)
	}
	return store, store
}
