package handlers

import (
	"net/http"

	"ethiqia/internal/score"
	"ethiqia/internal/service"
)

type StrikeRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Reason string `json:"reason" validate:"required,max=500"`
	Points *int   `json:"points" validate:"omitempty,min=-1000,max=1000"`
}

func (h *Handlers) GetScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	summary, err := h.ReputationService.Score(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, summary, http.StatusOK)
}

func (h *Handlers) GetDemoScore(w http.ResponseWriter, r *http.Request) {
	seed := r.URL.Query().Get("seed")
	if seed == "" {
		WriteError(w, "seed is required", http.StatusBadRequest)
		return
	}

	WriteSuccess(w, map[string]any{"seed": seed, "score": score.Demo(seed)}, http.StatusOK)
}

func (h *Handlers) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	result, err := h.ReputationService.CompleteProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, result, http.StatusOK)
}

func (h *Handlers) IssueStrike(w http.ResponseWriter, r *http.Request) {
	var req StrikeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.ReputationService.IssueStrike(r.Context(), service.StrikeRequest{
		UserID: req.UserID,
		Reason: req.Reason,
		Points: req.Points,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, result, http.StatusCreated)
}
