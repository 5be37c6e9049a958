package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	sessionStore "teamroster/internal/adapters/storage/session"
	domain "teamroster/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "teamroster_session"

// SecureCookies marks session and CSRF cookies Secure. Set to true in
// production (HTTPS) deployments.
var SecureCookies bool

// timeNow is a variable for testability.
var timeNow = time.Now

// Sessions returns middleware that loads the caller's session document
// before the handler runs and saves it back afterwards. A request without
// a cookie, or with a cookie for an unknown or expired session, gets a
// fresh empty session and a new cookie. Handlers reach the document via
// SessionFromContext and never touch the store directly.
func Sessions(store sessionStore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := timeNow()
			sess, ok := loadSession(r, store, now)
			if !ok {
				sess = domain.New(uuid.New().String(), now)
				setSessionCookie(w, sess.ID)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, &sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			// Persist unconditionally so even an untouched session keeps
			// its cookie valid across requests. Two tabs racing on one
			// session resolve as last write wins.
			sess.Touch(timeNow())
			if err := store.Save(r.Context(), sess); err != nil {
				slog.Error("session_save_failed", "session_id", sess.ID, "error", err.Error())
			}
		})
	}
}

// loadSession fetches the session referenced by the request cookie.
// POST: returns the session and true, or false when absent or expired
func loadSession(r *http.Request, store sessionStore.Store, now time.Time) (domain.Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return domain.Session{}, false
	}
	sess, err := store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, sessionStore.ErrNotFound) {
			slog.Error("session_load_failed", "error", err.Error())
		}
		return domain.Session{}, false
	}
	if sess.Expired(now) {
		return domain.Session{}, false
	}
	return sess, true
}

// SessionFromContext extracts the session document from the request context.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*domain.Session)
	return sess, ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// setSessionCookie sets the session cookie on the response.
func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(domain.Lifetime / time.Second),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
