package domain

import (
	"fmt"
	"time"
)

// InactivityPolicy decides when an idle session must be terminated.
//
// Customers get a fixed timeout. Staff get a shorter timeout that is suspended
// entirely while the wall clock is inside the restaurant's business-hours
// window; personnel are never auto-logged-out during operating hours.
type InactivityPolicy struct {
	CustomerTimeout time.Duration
	StaffTimeout    time.Duration

	// Business-hours window as minutes since local midnight. A window whose
	// close does not come after its open (including an overnight span) is
	// invalid configuration: the exemption is disabled and the staff timer
	// stays armed.
	OpenMinute  int
	CloseMinute int
}

// WindowValid reports whether the business-hours window is usable.
func (p InactivityPolicy) WindowValid() bool {
	return p.OpenMinute >= 0 && p.CloseMinute <= 24*60 && p.OpenMinute < p.CloseMinute
}

// InBusinessHours reports whether now falls strictly inside the window.
func (p InactivityPolicy) InBusinessHours(now time.Time) bool {
	if !p.WindowValid() {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	return minute >= p.OpenMinute && minute < p.CloseMinute
}

// Timeout returns the idle limit for the given role.
func (p InactivityPolicy) Timeout(r Role) time.Duration {
	if r.Staff() {
		return p.StaffTimeout
	}
	return p.CustomerTimeout
}

// Expired reports whether the session must be terminated at now. The
// business-hours check runs before the idle comparison so an exempt staff
// session never expires inside the window regardless of elapsed inactivity.
func (p InactivityPolicy) Expired(s *Session, now time.Time) bool {
	if s.Identity.Role.Staff() && p.InBusinessHours(now) {
		return false
	}
	return s.Idle(now) >= p.Timeout(s.Identity.Role)
}

// ParseClock converts an "HH:MM" wall-clock string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}
