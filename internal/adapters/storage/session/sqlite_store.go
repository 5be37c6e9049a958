package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "teamroster/internal/domain/session"
)

// sessionDoc is the JSON shape persisted in the data column. Timestamps
// live in their own columns so expiry can be enforced in SQL.
type sessionDoc struct {
	Roster json.RawMessage     `json:"roster"`
	Flash  map[string][]string `json:"flash,omitempty"`
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a live session by id. Sessions past their inactivity
// lifetime are deleted and reported as not found.
// PRE: id is non-empty
// POST: returns the session or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Session, error) {
	query := "SELECT id, data, created_at, updated_at FROM session WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	var (
		entity           domain.Session
		data             string
		created, updated string
	)
	err := row.Scan(&entity.ID, &data, &created, &updated)
	if err == sql.ErrNoRows {
		return domain.Session{}, ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("query session: %w", err)
	}

	if entity.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return domain.Session{}, fmt.Errorf("parse created_at: %w", err)
	}
	if entity.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return domain.Session{}, fmt.Errorf("parse updated_at: %w", err)
	}

	if entity.Expired(time.Now()) {
		_ = s.Delete(ctx, id)
		return domain.Session{}, ErrNotFound
	}

	var doc sessionDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return domain.Session{}, fmt.Errorf("decode session data: %w", err)
	}
	if err := json.Unmarshal(doc.Roster, &entity.Roster); err != nil {
		return domain.Session{}, fmt.Errorf("decode roster: %w", err)
	}
	entity.Flash = doc.Flash
	return entity, nil
}

// Save persists a session (insert or update).
// PRE: entity.ID is non-empty
// POST: session row upserted with the entity's timestamps
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	rosterJSON, err := json.Marshal(entity.Roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	data, err := json.Marshal(sessionDoc{Roster: rosterJSON, Flash: entity.Flash})
	if err != nil {
		return fmt.Errorf("encode session data: %w", err)
	}

	query := `INSERT INTO session (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		string(data),
		entity.CreatedAt.UTC().Format(time.RFC3339),
		entity.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session by id.
// PRE: id is non-empty
// POST: session row with the given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions whose inactivity lifetime has passed.
// POST: returns the number of sessions removed
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-domain.Lifetime).UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
