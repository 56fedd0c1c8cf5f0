package service

import (
	"errors"

	"ethiqia/internal/config"
	"ethiqia/internal/events"
	"ethiqia/internal/moderation"
	"ethiqia/internal/repository"
	"ethiqia/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrInvalidAction      = errors.New("invalid action")
	ErrNothingToMark      = errors.New("one of id, ids or markAllRead is required")
	ErrInvalidFile        = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrModerationDisabled = errors.New("moderation is not configured")
)

type Service struct {
	Auth         AuthService
	Profile      ProfileService
	Post         PostService
	Social       SocialService
	Notification NotificationService
	Reputation   ReputationService
	Upload       UploadService
	Moderation   ModerationService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, moderator moderation.Moderator, publisher events.Publisher) *Service {
	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		Profile:      NewProfileService(rep.User),
		Post:         NewPostService(rep.Post, rep.Comment, rep.Notification, moderator, publisher),
		Social:       NewSocialService(rep.Like, rep.Follow, rep.Notification, publisher),
		Notification: NewNotificationService(rep.Notification),
		Reputation:   NewReputationService(rep.Ledger, rep.User, rep.Notification, cfg.Reputation, publisher),
		Upload:       NewUploadService(storage, rep.User, cfg.MaxUploadSize),
		Moderation:   NewModerationService(moderator),
	}
}
