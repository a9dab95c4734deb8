package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

type userService struct {
	repo     ports.UserRepository
	sessions ports.SessionService
	log      zerolog.Logger
}

// NewUserService returns the account administration and profile
// implementation.
func NewUserService(repo ports.UserRepository, sessions ports.SessionService, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, sessions: sessions, log: log}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Update(ctx context.Context, id int64, in ports.UserUpdateInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != "" {
		if !in.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = in.Role
	}
	if in.DisplayName != "" {
		user.DisplayName = in.DisplayName
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ToggleDeactivated(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Deactivated = !user.Deactivated
	if err := s.repo.SetDeactivated(ctx, id, user.Deactivated); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", id).
		Bool("deactivated", user.Deactivated).
		Msg("deactivation toggled")

	return user, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, sessionID string, userID int64, in ports.ProfileUpdateInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != "" {
		user.DisplayName = in.DisplayName
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Echo the edit into the live session so reads through it stay
	// consistent without a re-fetch. A failure here means the session is
	// already gone; the persisted update still stands.
	if _, err := s.sessions.Refresh(ctx, sessionID, user.DisplayName, user.Email, user.Phone); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("profile update not echoed into session")
	}

	return user, nil
}
