// Package service implements the HTTP JSON API on top of storage and the
// pure invite and settlement packages. Handlers validate input, read a
// snapshot from storage, run the domain logic and persist the result;
// domain error kinds are translated to transport status codes here and
// nowhere else.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitpot/splitpot/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a domain error to its transport status.
// NotFound→404, PermissionDenied→403, Conflict and InvalidState→409;
// anything else is an internal error and the detail stays in the log.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrPermissionDenied):
		respondJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, models.ErrConflict), errors.Is(err, models.ErrInvalidState):
		respondJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		slog.Error("Internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
