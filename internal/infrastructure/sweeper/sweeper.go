package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elbuensabor/ordering-system/internal/api/metrics"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

const defaultInterval = time.Minute

// Sweeper reaps idle sessions in the background. Expiry is also enforced
// lazily on resolve; the sweeper exists so abandoned sessions do not linger
// in the store until their owner comes back.
type Sweeper struct {
	store    ports.SessionStore
	policy   domain.InactivityPolicy
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// New creates a Sweeper. If interval <= 0, defaultInterval is used.
func New(store ports.SessionStore, policy domain.InactivityPolicy, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		store:    store,
		policy:   policy,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.log.Warn().Err(err).Msg("session sweep failed")
			}
		}
	}
}

// Sweep deletes every session the inactivity policy marks as expired and
// returns how many were reaped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	sessions, err := s.store.All(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	reaped := 0
	for _, sess := range sessions {
		if !s.policy.Expired(sess, now) {
			continue
		}
		if err := s.store.Delete(ctx, sess.ID); err != nil {
			s.log.Warn().Err(err).Int64("user_id", sess.Identity.UserID).Msg("failed to reap session")
			continue
		}
		reaped++
		metrics.SessionsEndedTotal.WithLabelValues("inactivity").Inc()
		s.log.Info().
			Int64("user_id", sess.Identity.UserID).
			Str("role", string(sess.Identity.Role)).
			Dur("idle", sess.Idle(now)).
			Msg("idle session reaped")
	}

	metrics.ActiveSessions.Set(float64(len(sessions) - reaped))
	return reaped, nil
}
