package handlers

import (
	"net/http"

	"ethiqia/internal/models"
	"ethiqia/internal/service"
)

type MarkReadRequest struct {
	ID          string   `json:"id" validate:"omitempty,uuid"`
	IDs         []string `json:"ids" validate:"omitempty,max=500,dive,required,uuid"`
	MarkAllRead bool     `json:"markAllRead"`
}

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	notifications, err := h.NotificationService.ListNotifications(r.Context(), userID, queryInt(r, "limit", service.DefaultListLimit))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	WriteSuccess(w, map[string]any{"notifications": notifications}, http.StatusOK)
}

func (h *Handlers) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req MarkReadRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.NotificationService.MarkRead(r.Context(), userID, service.MarkReadRequest{
		ID:          req.ID,
		IDs:         req.IDs,
		MarkAllRead: req.MarkAllRead,
	}); err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]bool{"ok": true}, http.StatusOK)
}
