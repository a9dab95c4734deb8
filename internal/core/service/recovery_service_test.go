package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

type stubCodeStore struct {
	codes   map[string]string
	ttls    map[string]time.Duration
	deletes int
}

func newStubCodeStore() *stubCodeStore {
	return &stubCodeStore{codes: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *stubCodeStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.codes[email] = code
	s.ttls[email] = ttl
	return nil
}

func (s *stubCodeStore) Get(_ context.Context, email string) (string, error) {
	code, ok := s.codes[email]
	if !ok {
		return "", domain.ErrRecoveryCodeInvalid
	}
	return code, nil
}

func (s *stubCodeStore) Delete(_ context.Context, email string) error {
	s.deletes++
	delete(s.codes, email)
	return nil
}

func TestRecoveryService_Request(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := NewRecoveryService(repo, codes, zerolog.Nop())

	seedUser(t, repo, "hana@example.com", "oldpass", domain.RoleCustomer)

	if err := svc.Request(context.Background(), "hana@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	code := codes.codes["hana@example.com"]
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			t.Fatalf("code contains non-digit: %q", code)
		}
	}
	if codes.ttls["hana@example.com"] != 10*time.Minute {
		t.Fatalf("unexpected code ttl: %v", codes.ttls["hana@example.com"])
	}
}

func TestRecoveryService_Request_UnknownEmail(t *testing.T) {
	svc := NewRecoveryService(newStubUserRepo(), newStubCodeStore(), zerolog.Nop())

	if err := svc.Request(context.Background(), "ghost@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecoveryService_Verify(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := NewRecoveryService(repo, codes, zerolog.Nop())

	codes.codes["ivan@example.com"] = "123456"

	if err := svc.Verify(context.Background(), "ivan@example.com", "123456"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.Verify(context.Background(), "ivan@example.com", "654321"); err != domain.ErrRecoveryCodeInvalid {
		t.Fatalf("expected ErrRecoveryCodeInvalid for wrong code, got %v", err)
	}
	if err := svc.Verify(context.Background(), "nobody@example.com", "123456"); err != domain.ErrRecoveryCodeInvalid {
		t.Fatalf("expected ErrRecoveryCodeInvalid for missing code, got %v", err)
	}
}

func TestRecoveryService_Reset(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := NewRecoveryService(repo, codes, zerolog.Nop())

	seedUser(t, repo, "julia@example.com", "oldpass", domain.RoleCustomer)
	codes.codes["julia@example.com"] = "123456"

	if err := svc.Reset(context.Background(), "julia@example.com", "123456", "newpass"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	user, err := repo.FindByEmail(context.Background(), "julia@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	// The code is consumed: a replay must fail.
	if err := svc.Reset(context.Background(), "julia@example.com", "123456", "again"); err != domain.ErrRecoveryCodeInvalid {
		t.Fatalf("expected ErrRecoveryCodeInvalid on replay, got %v", err)
	}
}

func TestRecoveryService_Reset_WrongCode(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := NewRecoveryService(repo, codes, zerolog.Nop())

	seedUser(t, repo, "kim@example.com", "oldpass", domain.RoleCustomer)
	codes.codes["kim@example.com"] = "123456"

	if err := svc.Reset(context.Background(), "kim@example.com", "000000", "newpass"); err != domain.ErrRecoveryCodeInvalid {
		t.Fatalf("expected ErrRecoveryCodeInvalid, got %v", err)
	}

	user, _ := repo.FindByEmail(context.Background(), "kim@example.com")
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("oldpass")); err != nil {
		t.Fatalf("password must not change on failed reset: %v", err)
	}
}

func TestRecoveryService_Reset_EmptyPassword(t *testing.T) {
	repo := newStubUserRepo()
	codes := newStubCodeStore()
	svc := NewRecoveryService(repo, codes, zerolog.Nop())

	seedUser(t, repo, "lea@example.com", "oldpass", domain.RoleCustomer)
	codes.codes["lea@example.com"] = "123456"

	if err := svc.Reset(context.Background(), "lea@example.com", "123456", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
