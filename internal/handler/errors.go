package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ethiqia/internal/logging"
	"ethiqia/internal/repository"
	"ethiqia/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteErrorDetails(w, message, nil, statusCode)
}

func WriteErrorDetails(w http.ResponseWriter, message string, details any, statusCode int) {
	WriteSuccess(w, ErrorResponse{Error: message, Details: details}, statusCode)
}

func WriteSuccess(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.WithComponent("http").Warn("encode response", zap.Error(err))
	}
}

// writeServiceError maps domain errors onto status codes. Anything unknown is
// logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		WriteError(w, "already exists", http.StatusConflict)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidToken):
		WriteError(w, service.ErrInvalidToken.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrNothingToMark),
		errors.Is(err, service.ErrInvalidFile),
		errors.Is(err, service.ErrFileTooLarge):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrModerationDisabled):
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		requestLogger(r).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
