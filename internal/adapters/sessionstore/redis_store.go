// Package sessionstore persists the active client session.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/config"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

// KeyValueClient is the subset of *redis.Client the store uses.
type KeyValueClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the serialized session under one fixed key.
type RedisStore struct {
	client KeyValueClient
	key    string
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionPersister = (*RedisStore)(nil)

func NewRedisStore(client KeyValueClient, key string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		cb:     config.NewCircuitBreaker("Redis-Session"),
	}
}

// Save stores the session. When the session has an expiry the key expires
// with it.
func (s *RedisStore) Save(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("session for %q already expired", session.UserID)
		}
	}

	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, s.key, string(payload), ttl).Err()
	})
	return err
}

func (s *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := s.cb.Execute(func() (interface{}, error) {
		v, err := s.client.Get(ctx, s.key).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return v, err
	})
	if err != nil {
		return nil, err
	}

	value := raw.(string)
	if value == "" {
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, s.key).Err()
	})
	return err
}

func (s *RedisStore) BreakerState() gobreaker.State {
	return s.cb.State()
}
