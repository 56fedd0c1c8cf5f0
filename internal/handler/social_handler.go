package handlers

import (
	"net/http"

	"ethiqia/internal/service"
)

type FollowRequest struct {
	FollowerID  string `json:"followerId" validate:"required,uuid"`
	FollowingID string `json:"followingId" validate:"required,uuid"`
	Action      string `json:"action" validate:"omitempty,oneof=follow unfollow"`
}

type LikeRequest struct {
	PostID string `json:"postId" validate:"required,uuid"`
	UserID string `json:"userId" validate:"required,uuid"`
	Action string `json:"action" validate:"omitempty,oneof=like unlike"`
}

// toggleStatus is 201 only when the call created the edge.
func toggleStatus(result *service.ToggleResult) int {
	if result.Created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (h *Handlers) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	var req FollowRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.SocialService.ToggleFollow(r.Context(), req.FollowerID, req.FollowingID, req.Action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]bool{"following": result.Active}, toggleStatus(result))
}

func (h *Handlers) GetFollow(w http.ResponseWriter, r *http.Request) {
	followerID := r.URL.Query().Get("followerId")
	followingID := r.URL.Query().Get("followingId")
	if !h.requireUUID(w, "followerId", followerID) || !h.requireUUID(w, "followingId", followingID) {
		return
	}

	following, err := h.SocialService.IsFollowing(r.Context(), followerID, followingID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]bool{"following": following}, http.StatusOK)
}

func (h *Handlers) FollowStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if !h.requireUUID(w, "userId", userID) {
		return
	}

	stats, err := h.SocialService.FollowStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var req LikeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.SocialService.ToggleLike(r.Context(), req.PostID, req.UserID, req.Action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]bool{"liked": result.Active}, toggleStatus(result))
}

func (h *Handlers) GetLike(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("postId")
	userID := r.URL.Query().Get("userId")
	if !h.requireUUID(w, "postId", postID) || !h.requireUUID(w, "userId", userID) {
		return
	}

	liked, err := h.SocialService.IsLiked(r.Context(), postID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, map[string]bool{"liked": liked}, http.StatusOK)
}
