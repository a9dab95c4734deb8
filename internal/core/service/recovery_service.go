package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

const recoveryCodeTTL = 10 * time.Minute

type recoveryService struct {
	repo  ports.UserRepository
	codes ports.RecoveryStore
	log   zerolog.Logger
}

// NewRecoveryService returns the password-recovery flow implementation. Code
// delivery (email) is an external concern; the code is logged at debug level
// for local development.
func NewRecoveryService(repo ports.UserRepository, codes ports.RecoveryStore, log zerolog.Logger) ports.RecoveryService {
	return &recoveryService{repo: repo, codes: codes, log: log}
}

func (s *recoveryService) Request(ctx context.Context, email string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return err
	}

	code, err := newRecoveryCode()
	if err != nil {
		return err
	}

	if err := s.codes.Put(ctx, email, code, recoveryCodeTTL); err != nil {
		return fmt.Errorf("store recovery code: %w", err)
	}

	s.log.Info().Str("email", email).Msg("recovery code issued")
	s.log.Debug().Str("email", email).Str("code", code).Msg("recovery code")
	return nil
}

func (s *recoveryService) Verify(ctx context.Context, email, code string) error {
	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		return err
	}
	if code == "" || stored != code {
		return domain.ErrRecoveryCodeInvalid
	}
	return nil
}

func (s *recoveryService) Reset(ctx context.Context, email, code, newPassword string) error {
	if err := s.Verify(ctx, email, code); err != nil {
		return err
	}
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	// Consume the code so it cannot be replayed.
	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to delete recovery code")
	}

	s.log.Info().Str("email", email).Msg("password reset")
	return nil
}

// newRecoveryCode produces a 6-digit one-time code.
func newRecoveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
