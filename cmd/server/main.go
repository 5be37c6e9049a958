package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "modernc.org/sqlite"

	web "teamroster/internal/adapters/http"
	"teamroster/internal/adapters/storage"
	sessionStore "teamroster/internal/adapters/storage/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Session backend: a single SQLite file with WAL mode and a busy timeout
	dbPath := envOrDefault("ROSTER_DB", "roster.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	sessions := sessionStore.NewSQLiteStore(db)

	// Purge expired sessions hourly
	stopCh := make(chan struct{})
	go purgeExpiredSessions(sessions, time.Hour, stopCh)
	defer close(stopCh)

	mux := web.NewMux("static", &web.Deps{SessionStore: sessions})

	addr := envOrDefault("ROSTER_ADDR", ":8080")
	log.Printf("Team roster %s starting on %s (env=%s)", version, addr, envOrDefault("ROSTER_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// purgeExpiredSessions sweeps the session store on an interval until
// stopCh is closed.
func purgeExpiredSessions(store sessionStore.Store, interval time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(context.Background(), time.Now())
			if err != nil {
				log.Printf("session purge failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("purged %d expired session(s)", n)
			}
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
