package memory

import (
	"context"
	"sync"

	"github.com/mcoot/pizzeria/internal/dependencies/clock"
	"github.com/mcoot/pizzeria/internal/model"
)

// SessionStore keeps sessions in a map with clock-driven expiry.
// Expired entries are dropped when read and swept on every Put.
type SessionStore struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewSessionStore creates an empty in-memory session store
func NewSessionStore(clk clock.Clock) *SessionStore {
	return &SessionStore{
		clock:    clk,
		sessions: make(map[string]model.Session),
	}
}

func (s *SessionStore) Get(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}

	if session.Expired(s.clock.Now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}

	return cloneSession(session), nil
}

func (s *SessionStore) Put(ctx context.Context, session *model.Session) error {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, existing := range s.sessions {
		if existing.Expired(now) {
			delete(s.sessions, token)
		}
	}
	s.sessions[session.Token] = *cloneSession(*session)
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired or not
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cloneSession copies the session and its account snapshot
func cloneSession(session model.Session) *model.Session {
	if session.Account != nil {
		account := *session.Account
		session.Account = &account
	}
	return &session
}
