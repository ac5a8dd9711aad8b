package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis so multiple app processes can share
// them. Enabled when REDIS_URL is configured.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, id, email string) error {
	if err := s.client.Set(ctx, keyPrefix+id, email, 0).Err(); err != nil {
		return fmt.Errorf("session create: %w", err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context, id string) (string, bool, error) {
	email, err := s.client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session read: %w", err)
	}
	return email, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
