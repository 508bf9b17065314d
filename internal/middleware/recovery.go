package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked.
// The recovered value is passed for logging only and must not be echoed to the client.
type PanicHandler func(w http.ResponseWriter, r *http.Request, recovered any)

// Recovery turns a panic in next into a logged error and a call to handler.
// http.ErrAbortHandler is re-raised so net/http can drop the connection quietly.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				handler(w, r, recovered)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// PlainTextPanicHandler answers with a bare 500.
func PlainTextPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
