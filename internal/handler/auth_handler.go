package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ethiqia/internal/models"
	"ethiqia/internal/repository"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.AuthService.Register(r.Context(), email, req.Password); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			WriteError(w, "email already registered", http.StatusConflict)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, accessToken, refreshToken, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, AuthResponse{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, http.StatusOK)
}
