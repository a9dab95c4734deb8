package config

import (
	"testing"
	"time"
)

func TestSessionConfig_Policy(t *testing.T) {
	cfg := SessionConfig{
		CustomerTimeout: 45 * time.Minute,
		StaffTimeout:    30 * time.Minute,
		BusinessOpen:    "08:00",
		BusinessClose:   "20:00",
	}

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("policy failed: %v", err)
	}
	if policy.OpenMinute != 480 || policy.CloseMinute != 1200 {
		t.Fatalf("unexpected window: %d-%d", policy.OpenMinute, policy.CloseMinute)
	}
	if policy.CustomerTimeout != 45*time.Minute || policy.StaffTimeout != 30*time.Minute {
		t.Fatalf("timeouts not carried over: %+v", policy)
	}
	if !policy.WindowValid() {
		t.Fatalf("default window should be valid")
	}
}

func TestSessionConfig_Policy_BadClock(t *testing.T) {
	cfg := SessionConfig{BusinessOpen: "8am", BusinessClose: "20:00"}
	if _, err := cfg.Policy(); err == nil {
		t.Fatalf("expected error for unparseable clock")
	}
}

func TestSessionConfig_Policy_OvernightWindowIsInvalid(t *testing.T) {
	cfg := SessionConfig{BusinessOpen: "20:00", BusinessClose: "04:00"}
	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("policy failed: %v", err)
	}
	// Both clocks parse; the window itself is rejected downstream.
	if policy.WindowValid() {
		t.Fatalf("overnight window should be invalid")
	}
}
