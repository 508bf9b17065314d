package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/apierr"
	"github.com/mcoot/pizzeria/internal/middleware"
)

// Recovery answers a panicking API request with the generic INTERNAL_ERROR body.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
