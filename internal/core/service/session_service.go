package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/rs/zerolog"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

// 256-bit session identifiers.
const sessionIDBytes = 32

type sessionService struct {
	store  ports.SessionStore
	policy domain.InactivityPolicy
	log    zerolog.Logger
	now    func() time.Time
}

// NewSessionService returns the SessionService implementation. All session
// state flows through it: login creates, every request resolves, logout
// destroys.
func NewSessionService(store ports.SessionStore, policy domain.InactivityPolicy, log zerolog.Logger) ports.SessionService {
	return &sessionService{
		store:  store,
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, identity domain.Identity) (*domain.Session, error) {
	if !identity.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sess := &domain.Session{
		ID:        id,
		Identity:  identity,
		CreatedAt: now,
		LastSeen:  now,
	}

	// Write through before returning so a restart cannot lose the session.
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", identity.UserID).
		Str("role", string(identity.Role)).
		Msg("session created")

	return sess, nil
}

func (s *sessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if s.policy.Expired(sess, now) {
		if delErr := s.store.Delete(ctx, sessionID); delErr != nil {
			s.log.Warn().Err(delErr).Msg("failed to delete expired session")
		}
		s.log.Info().
			Int64("user_id", sess.Identity.UserID).
			Dur("idle", sess.Idle(now)).
			Msg("session expired by inactivity")
		return nil, domain.ErrSessionExpired
	}

	// The request counts as interaction: re-arm the full timeout.
	sess.LastSeen = now.UTC()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *sessionService) Refresh(ctx context.Context, sessionID, displayName, email, phone string) (*domain.Session, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// UserID and Role are deliberately untouched: changing either requires a
	// fresh login.
	sess.Identity.DisplayName = displayName
	sess.Identity.Email = email
	sess.Identity.Phone = phone
	sess.LastSeen = s.now().UTC()

	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
