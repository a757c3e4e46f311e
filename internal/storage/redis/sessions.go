// Package redis provides a Redis-backed session store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mmynk/shoplist/internal/storage"
)

var _ storage.SessionStore = (*SessionStore)(nil)

// SessionStore keeps each session as a Redis hash that expires after ttl
// of inactivity.
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore connects to Redis and verifies the connection.
func NewSessionStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*SessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &SessionStore{client: client, prefix: "shoplist:session:", ttl: ttl}, nil
}

func (s *SessionStore) key(sessionID string) string {
	return s.prefix + sessionID
}

// Get returns the value stored under key for the session.
func (s *SessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return value, true, nil
}

// Set stores value under key and refreshes the session expiry.
func (s *SessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	k := s.key(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, k, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Delete removes key from the session.
func (s *SessionStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.HDel(ctx, s.key(sessionID), key).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *SessionStore) Close() error {
	return s.client.Close()
}
