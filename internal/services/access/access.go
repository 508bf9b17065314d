// Package access holds the authorization predicates evaluated before
// protected operations run.
package access

import (
	"errors"

	"github.com/mcoot/pizzeria/internal/model"
)

// ErrAccessDenied is returned whichever predicate fails
var ErrAccessDenied = errors.New("access denied")

// IsAuthenticated reports whether the session carries an account
func IsAuthenticated(s *model.Session) bool {
	return s.Bound()
}

// IsElevated reports whether the session carries an elevated account.
// The role is only read once an account is known to be present.
func IsElevated(s *model.Session) bool {
	return IsAuthenticated(s) && s.Account.Role == model.RoleElevated
}

// Guard is a session predicate
type Guard func(*model.Session) bool

// Check returns ErrAccessDenied unless every guard holds
func Check(s *model.Session, guards ...Guard) error {
	for _, g := range guards {
		if !g(s) {
			return ErrAccessDenied
		}
	}
	return nil
}
