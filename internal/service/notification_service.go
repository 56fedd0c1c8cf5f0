package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"ethiqia/internal/logging"
	"ethiqia/internal/models"
	"ethiqia/internal/repository"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// MarkReadRequest selects which notifications to mark. MarkAllRead wins
// over IDs, which are merged with ID.
type MarkReadRequest struct {
	ID          string
	IDs         []string
	MarkAllRead bool
}

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID string, req MarkReadRequest) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, ClampLimit(limit))
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, req MarkReadRequest) (int64, error) {
	if req.MarkAllRead {
		return s.notificationRepo.MarkAllRead(ctx, userID)
	}

	ids := make([]string, 0, len(req.IDs)+1)
	if req.ID != "" {
		ids = append(ids, req.ID)
	}
	for _, id := range req.IDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, ErrNothingToMark
	}

	return s.notificationRepo.MarkRead(ctx, userID, ids)
}

// ClampLimit maps a requested page size onto [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit < 1 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// notify inserts a notification and reports whether it was stored. Failures
// are logged only.
func notify(ctx context.Context, repo repository.NotificationRepository, userID, kind string, payload map[string]any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Payload: data,
	}

	if err := repo.Create(ctx, notification); err != nil {
		logging.WithComponent("notifications").Warn("notification insert failed",
			zap.String("user_id", userID),
			zap.String("type", kind),
			zap.Error(err),
		)
		return false
	}

	return true
}
