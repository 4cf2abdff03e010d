package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates a missing or revoked session.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionStore tracks live sessions so logout revokes tokens unconditionally.
// A token whose session row is gone is rejected even if its signature and
// expiry are still valid.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a Redis-backed store with the given session lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create registers a new session for the user and returns its id.
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(id), strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate checks the session exists and returns the bound user id.
func (s *SessionStore) Validate(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return userID, nil
}

// Revoke deletes the session. Deleting an absent session is not an error.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
