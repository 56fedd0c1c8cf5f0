package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ethiqia/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, body, created_at)
		VALUES (:id, :post_id, :user_id, :body, :created_at)
	`

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("post %s: %w", comment.PostID, ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT id, post_id, user_id, body, created_at FROM comments
		WHERE post_id = $1
		ORDER BY created_at
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return comments, nil
}
