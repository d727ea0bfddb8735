package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alliance-bank/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// SessionStore implements ports.SessionStore. Sessions are stored as JSON
// and expire with the key TTL.
type SessionStore struct {
	client *goredis.Client
	prefix string
}

// NewSessionStore creates a Redis-backed transfer session store.
func NewSessionStore(client *goredis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: "session:",
	}
}

// Get returns nil, nil if no live session exists for the requester.
func (s *SessionStore) Get(ctx context.Context, requester string) (*domain.TransferSession, error) {
	val, err := s.client.Get(ctx, s.prefix+requester).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis session get: %w", err)
	}

	var session domain.TransferSession
	if err := json.Unmarshal(val, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save replaces the session and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.TransferSession, ttl time.Duration) error {
	val, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+session.Requester, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

// Delete removes the session; deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, requester string) error {
	if err := s.client.Del(ctx, s.prefix+requester).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}
