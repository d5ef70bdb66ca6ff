package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gastos/internal/core"
)

// result is the mutation envelope: success plus either data or an error message.
type result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, result{Success: true, Data: data})
}

// respondError maps domain errors onto HTTP statuses and wraps the message in
// the failure envelope. Anything unrecognized is an internal error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *core.ValidationError
		ce *core.ConflictError
		nf *core.NotFoundError
		re *core.ReferenceError
	)

	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &ce):
		status = http.StatusConflict
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &re):
		status = http.StatusConflict
	default:
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		message = "Internal server error"
	}

	writeJSON(w, status, result{Success: false, Error: message})
}

// respondFetchError is the read-path failure: reads return bare payloads, so
// their errors carry a generic message instead of leaking storage detail.
func respondFetchError(w http.ResponseWriter, r *http.Request, what string, err error) {
	slog.ErrorContext(r.Context(), "Failed to fetch "+what, "error", err)
	writeJSON(w, http.StatusInternalServerError, result{Success: false, Error: "Failed to fetch " + what})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
