package service

import (
	"context"

	"ethiqia/internal/moderation"
)

type ModerationService interface {
	Check(ctx context.Context, text string) (*moderation.Verdict, error)
}

type moderationService struct {
	moderator moderation.Moderator
}

func NewModerationService(moderator moderation.Moderator) ModerationService {
	return &moderationService{moderator: moderator}
}

func (s *moderationService) Check(ctx context.Context, text string) (*moderation.Verdict, error) {
	if s.moderator == nil {
		return nil, ErrModerationDisabled
	}
	return s.moderator.Moderate(ctx, text)
}
