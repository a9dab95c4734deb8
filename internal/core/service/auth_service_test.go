package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	for _, u := range r.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) SetDeactivated(_ context.Context, id int64, deactivated bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Deactivated = deactivated
	return nil
}

// stubSessions records session lifecycle calls without real storage.
type stubSessions struct {
	created   []*domain.Session
	destroyed []string
	refreshed int
	createErr error
}

func (s *stubSessions) Create(_ context.Context, identity domain.Identity) (*domain.Session, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	sess := &domain.Session{
		ID:       fmt.Sprintf("sess-%d", len(s.created)+1),
		Identity: identity,
	}
	s.created = append(s.created, sess)
	return sess, nil
}

func (s *stubSessions) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	for _, sess := range s.created {
		if sess.ID == sessionID {
			return sess, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) Refresh(_ context.Context, sessionID, displayName, email, phone string) (*domain.Session, error) {
	for _, sess := range s.created {
		if sess.ID == sessionID {
			sess.Identity.DisplayName = displayName
			sess.Identity.Email = email
			sess.Identity.Phone = phone
			s.refreshed++
			return sess, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessions) Destroy(_ context.Context, sessionID string) error {
	s.destroyed = append(s.destroyed, sessionID)
	return nil
}

type stubGoogle struct {
	email string
	name  string
	err   error
}

func (g *stubGoogle) Verify(_ context.Context, _ string) (string, string, error) {
	return g.email, g.name, g.err
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Role:         role,
		DisplayName:  "Test User",
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newTestAuthService(repo *stubUserRepo, sessions *stubSessions, google ports.GoogleVerifier) *AuthService {
	return NewAuthService(repo, sessions, google, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestAuthService(repo, sessions, nil)

	user := seedUser(t, repo, "carla@example.com", "s3cret", domain.RoleAdministrator)

	token, sess, err := svc.Login(context.Background(), "carla@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.Identity.UserID != user.ID || sess.Identity.Role != domain.RoleAdministrator {
		t.Fatalf("unexpected session identity: %+v", sess.Identity)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sid"] != sess.ID {
		t.Fatalf("token sid = %v, want %s", claims["sid"], sess.ID)
	}
	if claims["role"] != string(domain.RoleAdministrator) {
		t.Fatalf("token role = %v", claims["role"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubSessions{}, nil)

	seedUser(t, repo, "dan@example.com", "goodpass", domain.RoleCustomer)
	if _, _, err := svc.Login(context.Background(), "dan@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubSessions{}, nil)

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubSessions{}, nil)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestAuthService(repo, sessions, nil)

	user := seedUser(t, repo, "eva@example.com", "pass123", domain.RoleCustomer)
	if err := repo.SetDeactivated(context.Background(), user.ID, true); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "eva@example.com", "pass123"); err != domain.ErrAccountDeactivated {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
	if len(sessions.created) != 0 {
		t.Fatalf("no session must be created for a deactivated account")
	}
}

func TestAuthService_LoginWithGoogle_ProvisionsCustomer(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestAuthService(repo, sessions, &stubGoogle{email: "new@example.com", name: "New Person"})

	_, sess, err := svc.LoginWithGoogle(context.Background(), "google-id-token")
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if sess.Identity.Role != domain.RoleCustomer {
		t.Fatalf("first-contact google accounts must be customers, got %s", sess.Identity.Role)
	}

	user, err := repo.FindByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("provisioned user not persisted: %v", err)
	}
	if user.DisplayName != "New Person" {
		t.Fatalf("unexpected display name: %s", user.DisplayName)
	}
}

func TestAuthService_LoginWithGoogle_ExistingUser(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc := newTestAuthService(repo, sessions, &stubGoogle{email: "staff@example.com", name: "ignored"})

	user := seedUser(t, repo, "staff@example.com", "pass", domain.RoleCashier)

	_, sess, err := svc.LoginWithGoogle(context.Background(), "google-id-token")
	if err != nil {
		t.Fatalf("google login failed: %v", err)
	}
	if sess.Identity.UserID != user.ID || sess.Identity.Role != domain.RoleCashier {
		t.Fatalf("existing account must keep its role: %+v", sess.Identity)
	}
}

func TestAuthService_LoginWithGoogle_BadToken(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubSessions{}, &stubGoogle{err: errors.New("aud mismatch")})

	if _, _, err := svc.LoginWithGoogle(context.Background(), "bad"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginWithGoogle_NotConfigured(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubSessions{}, nil)

	if _, _, err := svc.LoginWithGoogle(context.Background(), "token"); err == nil {
		t.Fatalf("expected error when google login is not configured")
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubSessions{}, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		DisplayName: "Franco",
		Email:       "franco@example.com",
		Password:    "pass123",
		Role:        domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("password stored in clear")
	}

	stored, err := repo.FindByEmail(context.Background(), "franco@example.com")
	if err != nil {
		t.Fatalf("registered user not persisted: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), &stubSessions{}, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "a@b.com", Password: "x"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		DisplayName: "X", Email: "a@b.com", Password: "x", Role: "GERENTE",
	}); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubSessions{}, nil)

	in := ports.RegisterInput{DisplayName: "Gio", Email: "gio@example.com", Password: "pass123", Role: domain.RoleCustomer}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	sessions := &stubSessions{}
	svc := newTestAuthService(newStubUserRepo(), sessions, nil)

	if err := svc.Logout(context.Background(), "sess-1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "sess-1" {
		t.Fatalf("session not destroyed: %v", sessions.destroyed)
	}
}
