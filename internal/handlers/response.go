package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/pkg/logger"
)

// respondJSON writes v as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Log.WithError(err).Error("Failed to encode response")
		}
	}
}

// respondError maps service errors onto HTTP statuses. Validation failures
// are 400, missing or foreign resources 404, state conflicts 409 and
// everything else 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsConflict(err):
		status = http.StatusConflict
	case apperrors.IsStorage(err):
		logger.Log.WithError(err).Error("Storage error")
	}
	http.Error(w, err.Error(), status)
}
