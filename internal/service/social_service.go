package service

import (
	"context"

	"ethiqia/internal/events"
	"ethiqia/internal/models"
	"ethiqia/internal/repository"
)

// Toggle actions. An empty action flips the current state.
const (
	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"
	ActionLike     = "like"
	ActionUnlike   = "unlike"
)

// ToggleResult is the edge state after a toggle. Created is set only when
// this call inserted the edge.
type ToggleResult struct {
	Active  bool
	Created bool
}

type SocialService interface {
	ToggleFollow(ctx context.Context, followerID, followingID, action string) (*ToggleResult, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	FollowStats(ctx context.Context, userID string) (*models.FollowStats, error)
	ToggleLike(ctx context.Context, postID, userID, action string) (*ToggleResult, error)
	IsLiked(ctx context.Context, postID, userID string) (bool, error)
}

type socialService struct {
	likeRepo         repository.EdgeRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
	publisher        events.Publisher
}

func NewSocialService(
	likeRepo repository.EdgeRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
	publisher events.Publisher,
) SocialService {
	return &socialService{
		likeRepo:         likeRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *socialService) ToggleFollow(ctx context.Context, followerID, followingID, action string) (*ToggleResult, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	mode, err := edgeMode(action, ActionFollow, ActionUnfollow)
	if err != nil {
		return nil, err
	}

	result, err := toggleEdge(ctx, s.followRepo, followerID, followingID, mode)
	if err != nil {
		return nil, err
	}

	if result.Created {
		notify(ctx, s.notificationRepo, followingID, models.NotificationFollow, map[string]any{
			"follower_id": followerID,
		})
		events.PublishQuietly(ctx, s.publisher, events.FollowCreated, map[string]any{
			"follower_id":  followerID,
			"following_id": followingID,
		})
	}

	return result, nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

func (s *socialService) FollowStats(ctx context.Context, userID string) (*models.FollowStats, error) {
	return s.followRepo.Stats(ctx, userID)
}

func (s *socialService) ToggleLike(ctx context.Context, postID, userID, action string) (*ToggleResult, error) {
	mode, err := edgeMode(action, ActionLike, ActionUnlike)
	if err != nil {
		return nil, err
	}

	result, err := toggleEdge(ctx, s.likeRepo, postID, userID, mode)
	if err != nil {
		return nil, err
	}

	if result.Created {
		events.PublishQuietly(ctx, s.publisher, events.LikeCreated, map[string]any{
			"post_id": postID,
			"user_id": userID,
		})
	}

	return result, nil
}

func (s *socialService) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	return s.likeRepo.Exists(ctx, postID, userID)
}

type toggleMode int

const (
	modeFlip toggleMode = iota
	modeOn
	modeOff
)

func edgeMode(action, on, off string) (toggleMode, error) {
	switch action {
	case "":
		return modeFlip, nil
	case on:
		return modeOn, nil
	case off:
		return modeOff, nil
	default:
		return modeFlip, ErrInvalidAction
	}
}

// toggleEdge applies mode to the (a, b) edge. A flip deletes first and inserts
// only when nothing was removed, so two concurrent flips cannot both insert.
func toggleEdge(ctx context.Context, repo repository.EdgeRepository, a, b string, mode toggleMode) (*ToggleResult, error) {
	switch mode {
	case modeOn:
		created, err := repo.Insert(ctx, a, b)
		if err != nil {
			return nil, err
		}
		return &ToggleResult{Active: true, Created: created}, nil

	case modeOff:
		if _, err := repo.Delete(ctx, a, b); err != nil {
			return nil, err
		}
		return &ToggleResult{}, nil
	}

	removed, err := repo.Delete(ctx, a, b)
	if err != nil {
		return nil, err
	}
	if removed {
		return &ToggleResult{}, nil
	}

	created, err := repo.Insert(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Active: true, Created: created}, nil
}
