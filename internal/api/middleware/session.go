package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/pizzeria/internal/api/apierr"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session resolves the caller's session and stores it in the request
// context. Every request gets a session; unknown tokens resolve to Empty.
func Session(svc *session.Service, cookies *SessionCookies, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := svc.Resolve(r.Context(), extractToken(r, cookies))
			if err != nil {
				logger.Error("resolve session", slog.String("error", err.Error()))
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// extractToken returns the bearer token if one is supplied, otherwise the
// token from a verified session cookie.
func extractToken(r *http.Request, cookies *SessionCookies) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return cookies.Token(r)
}

// GetSession returns the session from the request context. Requests that did
// not pass through Session get an Empty session.
func GetSession(ctx context.Context) *model.Session {
	s, _ := ctx.Value(sessionContextKey).(*model.Session)
	if s == nil {
		return &model.Session{}
	}
	return s
}

// MustGetAccount returns the bound account or panics
func MustGetAccount(ctx context.Context) *model.Account {
	s := GetSession(ctx)
	if !s.Bound() {
		panic("no account in context - guard middleware not applied?")
	}
	return s.Account
}

// WithSession returns a context carrying s
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}
