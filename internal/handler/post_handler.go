package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"ethiqia/internal/models"
	"ethiqia/internal/service"
)

type CreatePostRequest struct {
	UserID        string  `json:"userId" validate:"required,uuid"`
	ImageURL      string  `json:"imageUrl" validate:"required,url,max=2048"`
	Caption       string  `json:"caption" validate:"max=2200"`
	AIProbability float64 `json:"aiProbability" validate:"min=0,max=1"`
	GlobalScore   *int    `json:"globalScore" validate:"omitempty,min=0,max=100"`
	Blocked       bool    `json:"blocked"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,max=1000"`
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	limit := service.ClampLimit(queryInt(r, "limit", service.DefaultListLimit))
	offset := max(queryInt(r, "offset", 0), 0)

	posts, err := h.PostService.ListPosts(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, map[string]any{"posts": posts}, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if !h.requireUUID(w, "id", postID) {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{"post": post}, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		UserID:        req.UserID,
		ImageURL:      req.ImageURL,
		Caption:       req.Caption,
		AIProbability: req.AIProbability,
		GlobalScore:   req.GlobalScore,
		Blocked:       req.Blocked,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{"post": post}, http.StatusCreated)
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if !h.requireUUID(w, "id", postID) {
		return
	}

	comments, err := h.PostService.ListComments(r.Context(), postID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	WriteSuccess(w, map[string]any{"comments": comments}, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	postID := mux.Vars(r)["id"]
	if !h.requireUUID(w, "id", postID) {
		return
	}

	var req CreateCommentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.PostService.AddComment(r.Context(), postID, userID, req.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]any{"comment": comment}, http.StatusCreated)
}
