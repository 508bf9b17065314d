package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/apierr"
)

// writeError writes err as an API error, logging anything that maps to a 5xx
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("error", err.Error()))
	}
	apierr.WriteError(w, err)
}
