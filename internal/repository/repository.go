package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"ethiqia/internal/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrPasswordMismatch = errors.New("password mismatch")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
}

// EdgeRepository stores a directed pair (a, b). Insert and Delete report
// whether a row was actually written or removed.
type EdgeRepository interface {
	Exists(ctx context.Context, a, b string) (bool, error)
	Insert(ctx context.Context, a, b string) (bool, error)
	Delete(ctx context.Context, a, b string) (bool, error)
}

type FollowRepository interface {
	EdgeRepository
	Stats(ctx context.Context, userID string) (*models.FollowStats, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, event *models.ReputationEvent) error
	AppendOnce(ctx context.Context, event *models.ReputationEvent) (bool, error)
	ListBySubject(ctx context.Context, subjectID string) ([]models.ReputationEvent, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type Repository struct {
	User         UserRepository
	Post         PostRepository
	Comment      CommentRepository
	Like         EdgeRepository
	Follow       FollowRepository
	Ledger       LedgerRepository
	Notification NotificationRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Like:         NewLikeRepository(db),
		Follow:       NewFollowRepository(db),
		Ledger:       NewLedgerRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
