// Package session binds accounts to client-held tokens.
//
// A session is either Empty (no account) or Bound (an account snapshot).
// Resolve never fails for an unknown or expired token; it reports an Empty
// session instead. The snapshot is taken at Bind time and is not refreshed
// when the underlying account changes.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/mcoot/pizzeria/internal/dependencies/clock"
	"github.com/mcoot/pizzeria/internal/dependencies/random"
	"github.com/mcoot/pizzeria/internal/model"
)

const (
	tokenPrefix = "sess_"
	tokenBytes  = 32
)

// Store persists sessions by token. Get returns model.ErrSessionNotFound for
// absent or expired sessions. Delete is idempotent.
type Store interface {
	Get(ctx context.Context, token string) (*model.Session, error)
	Put(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, token string) error
}

// Config holds configuration for the session service
type Config struct {
	TTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL: 24 * time.Hour,
	}
}

// Service manages the session lifecycle
type Service struct {
	store  Store
	random random.Random
	clock  clock.Clock
	ttl    time.Duration
}

// New creates a new session Service
func New(store Store, rnd random.Random, clk clock.Clock, cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Service{
		store:  store,
		random: rnd,
		clock:  clk,
		ttl:    cfg.TTL,
	}
}

// Bind attaches account to a freshly minted token. If previousToken is set,
// its binding is removed, so re-binding replaces rather than fails.
func (s *Service) Bind(ctx context.Context, previousToken string, account *model.Account) (*model.Session, error) {
	token, err := s.newToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &model.Session{
		Token:     token,
		Account:   account.Redacted(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	if previousToken != "" && previousToken != token {
		if err := s.store.Delete(ctx, previousToken); err != nil {
			return nil, fmt.Errorf("drop previous session: %w", err)
		}
	}

	return session, nil
}

// Resolve returns the session for token. Empty, unknown and expired tokens
// all resolve to an Empty session with a nil error.
func (s *Service) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return s.empty(), nil
	}

	session, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return s.empty(), nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Expired(s.clock.Now()) {
		return s.empty(), nil
	}

	return session, nil
}

// Clear removes the binding for token. The account itself is untouched.
func (s *Service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// TTL returns the lifetime of newly bound sessions
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) empty() *model.Session {
	return &model.Session{}
}

func (s *Service) newToken() (string, error) {
	b, err := s.random.Bytes(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	if len(b) != tokenBytes {
		return "", fmt.Errorf("mint session token: %w: short read", random.ErrEntropyFailure)
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
