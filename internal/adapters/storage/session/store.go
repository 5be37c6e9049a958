package session

import (
	"context"
	"errors"
	"time"

	domain "teamroster/internal/domain/session"
)

// ErrNotFound is returned when no live session exists for an id. An
// expired session is reported as not found.
var ErrNotFound = errors.New("session not found")

// Store persists session documents keyed by their opaque id.
type Store interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, value domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
