package handlers

import (
	"net/http"

	"ethiqia/internal/service"
)

type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=32"`
	FullName  *string `json:"fullName" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{"profile": user}, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.ProfileService.UpdateProfile(r.Context(), userID, service.UpdateProfileRequest{
		Username:  req.Username,
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{"profile": user}, http.StatusOK)
}
