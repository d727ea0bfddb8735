// Package memory holds in-process stores for single-node deployments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"alliance-bank/internal/core/domain"
)

type sessionEntry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore implements ports.SessionStore in process memory.
// Sessions are copied through JSON so callers never share state with the store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
	}
}

// Get returns nil, nil when no live session exists. Expired entries are dropped on read.
func (s *SessionStore) Get(_ context.Context, requester string) (*domain.TransferSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[requester]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, requester)
		return nil, nil
	}

	var session domain.TransferSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save replaces the session and resets its TTL. Expired sessions of other
// requesters are swept on the way so abandoned flows do not accumulate.
func (s *SessionStore) Save(_ context.Context, session *domain.TransferSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for requester, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, requester)
		}
	}
	s.sessions[session.Requester] = sessionEntry{data: data, expiresAt: now.Add(ttl)}
	return nil
}

// Delete removes the session if present.
func (s *SessionStore) Delete(_ context.Context, requester string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, requester)
	return nil
}
