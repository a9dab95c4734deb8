package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDeactivated = errors.New("account deactivated")
var ErrForbidden = errors.New("access forbidden")
var ErrRecoveryCodeInvalid = errors.New("recovery code invalid")

// User is the persisted account record backing an Identity.
type User struct {
	ID           int64     `json:"id"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Deactivated  bool      `json:"deactivated"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity projects the account onto the session-facing principal.
func (u *User) Identity() Identity {
	return Identity{
		UserID:      u.ID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		Deactivated: u.Deactivated,
	}
}
