package session

import (
	"time"

	"teamroster/internal/domain/roster"
)

// Lifetime is how long a session survives without activity. Expiry is
// measured against UpdatedAt, which the HTTP layer refreshes on every save.
const Lifetime = 31 * 24 * time.Hour

// Flash message kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Session is the per-browser document held in the session backend. It owns
// the roster and the pending one-shot flash messages.
type Session struct {
	ID        string              `json:"id"`
	Roster    roster.Roster       `json:"roster"`
	Flash     map[string][]string `json:"flash,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// New creates an empty session with the given id.
// PRE: id is non-empty
// POST: session has an empty roster, no flash, timestamps set to now
func New(id string, now time.Time) Session {
	return Session{
		ID:        id,
		Roster:    roster.Roster{Teams: []roster.Team{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddFlash queues a one-shot message under the given kind.
// PRE: kind is FlashSuccess or FlashError
// POST: message appended to the pending flash for that kind
func (s *Session) AddFlash(kind, message string) {
	if s.Flash == nil {
		s.Flash = make(map[string][]string)
	}
	s.Flash[kind] = append(s.Flash[kind], message)
}

// TakeFlash returns all pending flash messages and clears them.
// Messages are read once: a second call returns nil.
// POST: s.Flash is nil
func (s *Session) TakeFlash() map[string][]string {
	flash := s.Flash
	s.Flash = nil
	return flash
}

// Expired reports whether the session has passed its inactivity lifetime.
// INVARIANT: Session is not mutated
func (s *Session) Expired(now time.Time) bool {
	return now.Sub(s.UpdatedAt) > Lifetime
}

// Touch refreshes the activity timestamp.
// POST: UpdatedAt is set to now
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}
