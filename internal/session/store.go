// Package session implements the opaque-token session mechanism: a uuid
// token stored in a cookie maps to a user id in redis. One-shot flash
// notices ride alongside the session so messages survive redirects.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a token has no live session.
var ErrNotFound = errors.New("session not found")

const (
	sessionPrefix = "session:"
	flashPrefix   = "flash:"
)

// Store issues and resolves session tokens.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given session lifetime.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create opens a session for userID and returns the opaque token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	key := sessionPrefix + token

	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id bound to token.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionPrefix+token).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(id), nil
}

// Destroy tears the session down, along with any pending flashes.
func (s *Store) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionPrefix+token, flashPrefix+token).Err()
}

// Flash queues a one-shot notice on the session.
func (s *Store) Flash(ctx context.Context, token, message string) error {
	key := flashPrefix + token
	if err := s.rdb.RPush(ctx, key, message).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, s.ttl).Err()
}

// PopFlashes drains and returns the session's pending notices.
func (s *Store) PopFlashes(ctx context.Context, token string) ([]string, error) {
	key := flashPrefix + token

	messages, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
