package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

// AuthService implements registration and the login flows that create
// sessions.
type AuthService struct {
	repo      ports.UserRepository
	sessions  ports.SessionService
	google    ports.GoogleVerifier
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	sessions ports.SessionService,
	google ports.GoogleVerifier,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		google:    google,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Deactivated {
		return "", nil, domain.ErrAccountDeactivated
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *domain.Session, error) {
	if s.google == nil {
		return "", nil, errors.New("google login not configured")
	}

	email, name, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		// First contact via Google: provision a customer account with no
		// local password.
		now := time.Now().UTC()
		user, err = s.repo.Create(ctx, &domain.User{
			Role:        domain.RoleCustomer,
			DisplayName: name,
			Email:       email,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err != nil {
		return "", nil, err
	}
	if user.Deactivated {
		return "", nil, domain.ErrAccountDeactivated
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Role:         in.Role,
		DisplayName:  in.DisplayName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("user registered")

	return created, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	sess, err := s.sessions.Create(ctx, user.Identity())
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(sess)
	if err != nil {
		return "", nil, err
	}

	return token, sess, nil
}

// generateToken mints the access token. The JWT is only an envelope around
// the session id; identity truth stays in the session store.
func (s *AuthService) generateToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"uid":  sess.Identity.UserID,
		"role": string(sess.Identity.Role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
