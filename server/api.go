package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode response", slog.String("path", r.URL.Path), slog.Any("err", err))
	}
}

// writeError maps engine errors onto HTTP statuses: missing rows become 404,
// client-side cancellations are logged and dropped, everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, context.Canceled):
		slog.InfoContext(ctx, "Request cancelled by client", slog.String("path", r.URL.Path))
	default:
		slog.ErrorContext(ctx, "Failed to compute statistics", slog.String("path", r.URL.Path), slog.Any("err", err))
		http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
	}
}
