package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rfreitas/task-tracker/internal/errs"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeErrorMessage writes a JSON error body with the given status code.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps sentinel errors to HTTP statuses. Internal detail is logged
// and never exposed to the caller.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, errs.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		writeErrorMessage(w, http.StatusUnprocessableEntity, "this email already exists")
	case errors.Is(err, errs.ErrPasswordMismatch):
		writeErrorMessage(w, http.StatusUnprocessableEntity, "passwords must be the same")
	case errors.Is(err, errs.ErrRateLimited):
		writeErrorMessage(w, http.StatusTooManyRequests, "too many attempts")
	default:
		s.log.Error("internal error", zap.Error(err))
		writeErrorMessage(w, http.StatusInternalServerError, "internal error")
	}
}
