package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quizmatch-service/internal/domain"
)

// SessionStore keeps auth sessions in Redis so sign-out revokes tokens across
// instances. Keys expire with the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, tokenID, userID string) error {
	return s.client.Set(ctx, s.key(tokenID), userID, s.ttl).Err()
}

func (s *SessionStore) Lookup(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}

func (s *SessionStore) key(tokenID string) string {
	return "auth:session:" + tokenID
}
