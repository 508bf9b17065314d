package middleware

import (
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/apierr"
	"github.com/mcoot/pizzeria/internal/services/access"
)

// Require rejects requests whose session fails any guard. Every rejection is
// the same 403 regardless of which guard failed.
func Require(guards ...access.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := access.Check(GetSession(r.Context()), guards...); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated admits any bound session
func RequireAuthenticated() func(http.Handler) http.Handler {
	return Require(access.IsAuthenticated)
}

// RequireElevated admits bound sessions whose account is an administrator
func RequireElevated() func(http.Handler) http.Handler {
	return Require(access.IsAuthenticated, access.IsElevated)
}
