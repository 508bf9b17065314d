package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pizzeria/internal/dependencies/clock"
	"github.com/mcoot/pizzeria/internal/model"
)

// SessionStore keeps sessions as JSON values whose Redis TTL matches the
// session expiry, so Redis evicts them without a sweeper.
type SessionStore struct {
	client *redis.Client
	clock  clock.Clock
}

// NewSessionStore creates a session store on an existing client
func NewSessionStore(client *redis.Client, clk clock.Clock) *SessionStore {
	return &SessionStore{
		client: client,
		clock:  clk,
	}
}

func (s *SessionStore) Get(ctx context.Context, token string) (*model.Session, error) {
	session, err := getJSON[model.Session](ctx, s.client, sessionKey(token), model.ErrSessionNotFound)
	if err != nil {
		return nil, err
	}
	// Redis expiry has second granularity; the stored deadline is authoritative
	if session.Expired(s.clock.Now()) {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Put(ctx context.Context, session *model.Session) error {
	ttl := s.clock.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Already expired; storing it would only make it unreadable
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
