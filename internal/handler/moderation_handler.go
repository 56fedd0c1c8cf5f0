package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"ethiqia/internal/service"
)

type ModerationCheckRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

func (h *Handlers) CheckModeration(w http.ResponseWriter, r *http.Request) {
	var req ModerationCheckRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	verdict, err := h.ModerationService.Check(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrModerationDisabled) {
			WriteError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		requestLogger(r).Warn("moderation upstream failed", zap.Error(err))
		WriteError(w, "moderation service unavailable", http.StatusBadGateway)
		return
	}

	WriteSuccess(w, verdict, http.StatusOK)
}
