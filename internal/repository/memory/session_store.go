// Package memory holds in-process implementations of storage ports, used for
// local development and tests. State is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"invitationgallery/internal/domain"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.AdminSession
	now      func() time.Time
}

// NewSessionStore returns an empty in-memory domain.SessionStore.
func NewSessionStore() domain.SessionStore {
	return &sessionStore{
		sessions: make(map[string]domain.AdminSession),
		now:      time.Now,
	}
}

func (s *sessionStore) Create(_ context.Context, session *domain.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *sessionStore) Get(_ context.Context, id string) (*domain.AdminSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || session.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *sessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *sessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
