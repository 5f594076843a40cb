package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "servicebook:session:"

// redisStore keeps sessions in redis with a native key TTL.
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

type redisSession struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *redisStore) Create(ctx context.Context, creds Credentials) (string, error) {
	id := newID()
	payload, err := json.Marshal(redisSession{Token: creds.Token, Username: creds.Username})
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (Credentials, error) {
	payload, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to load session: %w", err)
	}

	var stored redisSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return Credentials{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return Credentials{Token: stored.Token, Username: stored.Username}, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
