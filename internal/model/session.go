package model

import "time"

// Session associates a client-held token with an account snapshot.
// A nil Account means the session is empty.
type Session struct {
	Token     string
	Account   *Account // point-in-time copy; later profile edits are not reflected
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Bound reports whether an account is attached to the session
func (s *Session) Bound() bool {
	return s != nil && s.Account != nil
}

// Expired reports whether the session has expired at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
