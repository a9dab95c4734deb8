package ports

import (
	"context"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// SessionService is the single owner of session state. Every other component
// reads identity through it; nothing else touches the session store.
type SessionService interface {
	// Create starts a session for the given identity and writes it through to
	// the store before returning.
	Create(ctx context.Context, identity domain.Identity) (*domain.Session, error)
	// Resolve loads a session and, when it is still live, re-arms its
	// inactivity deadline (an authenticated request counts as interaction).
	// An idle session past its deadline is destroyed and reported as
	// domain.ErrSessionExpired.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
	// Refresh replaces the mutable profile fields of a live session without
	// disturbing UserID or Role.
	Refresh(ctx context.Context, sessionID, displayName, email, phone string) (*domain.Session, error)
	// Destroy ends a session. Destroying an already-ended session is a no-op.
	Destroy(ctx context.Context, sessionID string) error
}
