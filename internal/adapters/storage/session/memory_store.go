package session

import (
	"context"
	"sync"
	"time"

	domain "teamroster/internal/domain/session"
)

// MemoryStore implements Store with an in-process map. It backs tests and
// is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

// Get retrieves a live session by id.
// PRE: id is non-empty
// POST: returns the session or ErrNotFound; expired sessions are removed
func (s *MemoryStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, ErrNotFound
	}
	if entity.Expired(time.Now()) {
		delete(s.sessions, id)
		return domain.Session{}, ErrNotFound
	}
	return entity, nil
}

// Save persists a session (insert or update).
// PRE: entity.ID is non-empty
// POST: entity is stored under its id
func (s *MemoryStore) Save(_ context.Context, entity domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[entity.ID] = entity
	return nil
}

// Delete removes a session by id.
// POST: session with the given id is removed
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes all sessions past their inactivity lifetime.
// POST: returns the number of sessions removed
func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entity := range s.sessions {
		if entity.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
