package ports

import (
	"context"
	"time"
)

// RecoveryStore holds pending password-recovery codes keyed by email. Entries
// are transient: they expire on their own and are removed once the flow
// completes.
type RecoveryStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns domain.ErrRecoveryCodeInvalid when no code is pending.
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}
