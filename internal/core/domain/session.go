package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")
var ErrSessionUnavailable = errors.New("session store unavailable")

// Session binds an opaque identifier to an Identity for the lifetime of a
// login. LastSeen moves forward on every authenticated request; the inactivity
// policy compares it against the wall clock to decide expiry.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// Idle returns how long the session has gone without an interaction.
func (s *Session) Idle(now time.Time) time.Duration {
	return now.Sub(s.LastSeen)
}
