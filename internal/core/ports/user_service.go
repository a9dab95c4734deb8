package ports

import (
	"context"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

// UserUpdateInput is an administrator-driven account update.
type UserUpdateInput struct {
	DisplayName string
	Phone       string
	Role        domain.Role
}

// ProfileUpdateInput is a self-service profile edit.
type ProfileUpdateInput struct {
	DisplayName string
	Email       string
	Phone       string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id int64, in UserUpdateInput) (*domain.User, error)
	// ToggleDeactivated flips the deactivated flag and returns the updated
	// account.
	ToggleDeactivated(ctx context.Context, id int64) (*domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	// UpdateProfile persists the edit and echoes the new profile fields into
	// the caller's live session.
	UpdateProfile(ctx context.Context, sessionID string, userID int64, in ProfileUpdateInput) (*domain.User, error)
}
