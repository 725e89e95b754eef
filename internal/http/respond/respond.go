// Package respond holds the encoding and parameter helpers shared by the API
// handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Internal logs err and answers with a generic 500.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func IDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// DateQuery reads an optional YYYY-MM-DD query parameter.
func DateQuery(r *http.Request, name string) (*civil.Date, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	d, err := civil.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &d, nil
}

// UUIDQuery reads an optional UUID query parameter.
func UUIDQuery(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &id, nil
}
