package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ethiqia/internal/models"
)

const postColumns = `id, user_id, image_url, caption, ai_probability, global_score, blocked, moderation_status, moderation_reason, created_at`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(id, user_id, image_url, caption, ai_probability, global_score, blocked,
		 moderation_status, moderation_reason, created_at)
		VALUES
		(:id, :user_id, :image_url, :caption, :ai_probability, :global_score, :blocked,
		 :moderation_status, :moderation_reason, :created_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if post.ModerationStatus == "" {
		post.ModerationStatus = models.ModerationUnchecked
	}

	if _, err := r.DB.NamedExecContext(ctx, query, post); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %s: %w", post.UserID, ErrNotFound)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

// GetByID treats a blocked post as absent, matching List.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND blocked = FALSE`

	var post models.Post
	if err := r.DB.GetContext(ctx, &post, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// List returns visible posts newest first.
func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE blocked = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}
