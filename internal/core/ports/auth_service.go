package ports

import (
	"context"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	DisplayName string
	Email       string
	Phone       string
	Password    string
	Role        domain.Role
}

type AuthService interface {
	// Login verifies credentials and returns a signed access token plus the
	// session it references.
	Login(ctx context.Context, email, password string) (string, *domain.Session, error)
	// LoginWithGoogle exchanges a Google ID token for a local session,
	// creating a customer account on first contact.
	LoginWithGoogle(ctx context.Context, idToken string) (string, *domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Logout destroys the session behind the token. Idempotent.
	Logout(ctx context.Context, sessionID string) error
}

// GoogleVerifier validates a third-party ID token and extracts the subject's
// email and display name.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (email, name string, err error)
}
