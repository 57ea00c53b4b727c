package memory

import (
	"context"
	"sync"
	"time"

	"quizmatch-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionStore, used when
// no Redis is configured and in tests.
type SessionStore struct {
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		clock:    time.Now,
		sessions: make(map[string]sessionEntry),
	}
}

func (s *SessionStore) Save(_ context.Context, tokenID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenID] = sessionEntry{userID: userID, expiresAt: s.clock().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, tokenID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[tokenID]
	s.mu.RUnlock()
	if !ok {
		return "", domain.ErrNoSession
	}
	if s.ttl > 0 && entry.expiresAt.Before(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, tokenID)
		s.mu.Unlock()
		return "", domain.ErrNoSession
	}
	return entry.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenID)
	return nil
}
