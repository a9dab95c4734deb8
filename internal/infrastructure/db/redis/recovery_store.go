package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/elbuensabor/ordering-system/internal/core/domain"
)

const recoveryPrefix = "recovery:"

// RecoveryStore holds pending password-recovery codes.
// Key format: recovery:<email>, expiring with the code's TTL.
type RecoveryStore struct {
	client *redis.Client
}

func NewRecoveryStore(client *redis.Client) *RecoveryStore {
	return &RecoveryStore{client: client}
}

func (s *RecoveryStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, recoveryPrefix+email, code, ttl).Err()
}

func (s *RecoveryStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, recoveryPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrRecoveryCodeInvalid
		}
		return "", fmt.Errorf("recovery code lookup: %w", err)
	}
	return code, nil
}

func (s *RecoveryStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, recoveryPrefix+email).Err()
}
