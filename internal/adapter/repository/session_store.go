package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rajgh7/surprisevista/internal/domain/session"
)

const (
	sessionKeyPrefix  = "chatsession:"
	defaultSessionTTL = 24 * time.Hour
)

// RedisSessionStore implements session.Store with one JSON value per
// session. The TTL is refreshed on every read and write so an active
// conversation never expires mid-checkout.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get implements session.Store.Get with idempotent lazy init
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	key := s.key(sessionID)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return session.New(sessionID, ""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	// Best-effort TTL refresh on read
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return &sess, nil
}

// Save implements session.Store.Save as a whole-record upsert
func (s *RedisSessionStore) Save(ctx context.Context, sess *session.Session) error {
	val, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.SessionID), val, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) key(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
