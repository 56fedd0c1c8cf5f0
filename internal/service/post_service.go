package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ethiqia/internal/events"
	"ethiqia/internal/logging"
	"ethiqia/internal/models"
	"ethiqia/internal/moderation"
	"ethiqia/internal/repository"
	"ethiqia/internal/score"
)

type CreatePostRequest struct {
	UserID        string
	ImageURL      string
	Caption       string
	AIProbability float64
	GlobalScore   *int
	Blocked       bool
}

type PostService interface {
	ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, userID, body string) (*models.Comment, error)
}

type postService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	moderator        moderation.Moderator
	publisher        events.Publisher
	logger           *zap.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository,
	moderator moderation.Moderator,
	publisher events.Publisher,
) PostService {
	return &postService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		moderator:        moderator,
		publisher:        publisher,
		logger:           logging.WithComponent("post-service"),
	}
}

func (p *postService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts, err := p.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		withDisplayScore(&posts[i])
	}

	return posts, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	withDisplayScore(post)
	return post, nil
}

// withDisplayScore fills EthiqiaScore from the stored global score, or from
// the demo score when none was recorded.
func withDisplayScore(post *models.Post) {
	if post.GlobalScore != nil {
		post.EthiqiaScore = *post.GlobalScore
		return
	}
	post.EthiqiaScore = score.Demo(post.ID)
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:           req.UserID,
		ImageURL:         req.ImageURL,
		Caption:          strings.TrimSpace(req.Caption),
		AIProbability:    req.AIProbability,
		GlobalScore:      req.GlobalScore,
		Blocked:          req.Blocked,
		ModerationStatus: models.ModerationUnchecked,
	}

	p.moderate(ctx, post)

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	withDisplayScore(post)

	events.PublishQuietly(ctx, p.publisher, events.PostCreated, map[string]any{
		"post_id": post.ID,
		"user_id": post.UserID,
		"blocked": post.Blocked,
	})

	return post, nil
}

// moderate checks the caption. An unavailable moderator leaves the post
// unchecked rather than failing the request.
func (p *postService) moderate(ctx context.Context, post *models.Post) {
	if p.moderator == nil || post.Caption == "" {
		return
	}

	verdict, err := p.moderator.Moderate(ctx, post.Caption)
	if err != nil {
		p.logger.Warn("caption moderation failed", zap.String("user_id", post.UserID), zap.Error(err))
		return
	}

	switch {
	case verdict.Blocked:
		post.Blocked = true
		post.ModerationStatus = models.ModerationBlocked
		post.ModerationReason = verdict.TopCategory
	case verdict.Review:
		post.ModerationStatus = models.ModerationReview
		post.ModerationReason = verdict.TopCategory
	default:
		post.ModerationStatus = models.ModerationApproved
	}
}

func (p *postService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return p.commentRepo.ListByPost(ctx, postID)
}

func (p *postService) AddComment(ctx context.Context, postID, userID, body string) (*models.Comment, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Body:   strings.TrimSpace(body),
	}

	if err := p.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		notify(ctx, p.notificationRepo, post.UserID, models.NotificationComment, map[string]any{
			"post_id":    postID,
			"comment_id": comment.ID,
			"user_id":    userID,
		})
	}

	return comment, nil
}
