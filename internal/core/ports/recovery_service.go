package ports

import "context"

// RecoveryService drives the password-recovery flow: request a one-time code,
// verify it, then reset the password which consumes the code.
type RecoveryService interface {
	Request(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Reset(ctx context.Context, email, code, newPassword string) error
}
