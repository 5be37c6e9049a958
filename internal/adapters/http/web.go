package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"teamroster/internal/adapters/http/middleware"
	sessionStore "teamroster/internal/adapters/storage/session"
)

// Deps holds the adapter dependencies the handlers need.
type Deps struct {
	SessionStore sessionStore.Store
}

// Global deps instance (set by NewMux)
var deps *Deps

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// loadCSRFKey reads the CSRF secret from ROSTER_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("ROSTER_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("ROSTER_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("ROSTER_ENV") == "production" {
		log.Fatal("ROSTER_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (CSRF cookies won't survive restart). Set ROSTER_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps) http.Handler {
	deps = d
	middleware.SecureCookies = os.Getenv("ROSTER_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.HandleFunc("GET /{$}", handleRoot)
	mux.HandleFunc("GET /teams", handleTeamList)
	mux.HandleFunc("GET /teams/new", handleNewTeamForm)
	mux.HandleFunc("POST /teams", handleCreateTeam)
	mux.HandleFunc("GET /teams/{teamName}", handleTeamDetail)
	mux.HandleFunc("POST /teams/{teamName}/members/new", handleAddMember)
	mux.HandleFunc("POST /teams/{teamName}/members/{memberName}/delete", handleRemoveMember)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Sessions(d.SessionStore),
		middleware.RateLimit(limiter),
		middleware.RequestLog,
	)
}
