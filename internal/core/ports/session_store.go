package ports

import (
	"context"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// SessionStore persists session records. Implementations must return
// domain.ErrSessionNotFound for an absent or unreadable record and wrap
// transport failures in domain.ErrSessionUnavailable so callers can tell
// "no session" apart from "cannot know yet".
type SessionStore interface {
	Put(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error
	// All returns every live session, for the inactivity sweeper.
	All(ctx context.Context) ([]*domain.Session, error)
}
