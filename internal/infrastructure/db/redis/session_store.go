package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

const sessionPrefix = "session:"

// SessionStore persists session records as JSON under session:<id>.
// Inactivity is enforced by policy, not by Redis TTL, because the staff
// business-hours exemption cannot be expressed as a fixed expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionPrefix+session.ID, payload, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		// A corrupt record is equivalent to no session. Drop it so the key
		// does not stay poisoned.
		_ = s.client.Del(ctx, sessionPrefix+id).Err()
		return nil, domain.ErrSessionNotFound
	}

	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}
	return nil
}

func (s *SessionStore) All(ctx context.Context) ([]*domain.Session, error) {
	var sessions []*domain.Session

	iter := s.client.Scan(ctx, 0, sessionPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // deleted between scan and read
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
		}
		var session domain.Session
		if err := json.Unmarshal(payload, &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	return sessions, nil
}
