package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"ethiqia/internal/config"
	"ethiqia/internal/events"
	"ethiqia/internal/models"
	"ethiqia/internal/repository"
)

// ScoreSummary is the read model of a subject's ledger.
type ScoreSummary struct {
	Score      int                      `json:"score"`
	ByEvent    map[string]int           `json:"by_event"`
	DaysActive int                      `json:"days_active"`
	History    []models.ReputationEvent `json:"history"`
}

type StrikeRequest struct {
	UserID string
	Reason string
	Points *int
}

type StrikeResult struct {
	Strike               *models.ReputationEvent `json:"strike"`
	NotificationInserted bool                    `json:"notification_inserted"`
}

type AwardResult struct {
	Awarded bool     `json:"awarded"`
	Missing []string `json:"missing,omitempty"`
}

type ReputationService interface {
	Score(ctx context.Context, userID string) (*ScoreSummary, error)
	IssueStrike(ctx context.Context, req StrikeRequest) (*StrikeResult, error)
	CompleteProfile(ctx context.Context, userID string) (*AwardResult, error)
}

type reputationService struct {
	ledgerRepo       repository.LedgerRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	cfg              config.Reputation
	publisher        events.Publisher
}

func NewReputationService(
	ledgerRepo repository.LedgerRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	cfg config.Reputation,
	publisher events.Publisher,
) ReputationService {
	return &reputationService{
		ledgerRepo:       ledgerRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cfg:              cfg,
		publisher:        publisher,
	}
}

func (s *reputationService) Score(ctx context.Context, userID string) (*ScoreSummary, error) {
	history, err := s.ledgerRepo.ListBySubject(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Summarize(history), nil
}

// Summarize sums the ledger as is. History keeps the order it was given in.
func Summarize(history []models.ReputationEvent) *ScoreSummary {
	summary := &ScoreSummary{
		ByEvent: make(map[string]int),
		History: history,
	}
	if summary.History == nil {
		summary.History = []models.ReputationEvent{}
	}

	days := make(map[string]struct{})
	for _, event := range history {
		summary.Score += event.Points
		summary.ByEvent[event.EventType] += event.Points
		days[event.CreatedAt.UTC().Format(time.DateOnly)] = struct{}{}
	}
	summary.DaysActive = len(days)

	return summary
}

func (s *reputationService) IssueStrike(ctx context.Context, req StrikeRequest) (*StrikeResult, error) {
	points := s.cfg.StrikeDefaultPoints
	if req.Points != nil {
		points = *req.Points
	}
	if points > 0 {
		points = -points
	}

	reason := strings.TrimSpace(req.Reason)
	metadata, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return nil, err
	}

	strike := &models.ReputationEvent{
		SubjectID: req.UserID,
		EventType: models.EventStrike,
		Points:    points,
		Metadata:  metadata,
	}

	if err := s.ledgerRepo.Append(ctx, strike); err != nil {
		return nil, err
	}

	inserted := notify(ctx, s.notificationRepo, req.UserID, models.NotificationStrike, map[string]any{
		"strike_id": strike.ID,
		"reason":    reason,
		"points":    points,
	})

	events.PublishQuietly(ctx, s.publisher, events.StrikeIssued, map[string]any{
		"user_id": req.UserID,
		"points":  points,
		"reason":  reason,
	})

	return &StrikeResult{Strike: strike, NotificationInserted: inserted}, nil
}

func (s *reputationService) CompleteProfile(ctx context.Context, userID string) (*AwardResult, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if missing := MissingProfileFields(user, s.cfg.ProfileMinBioLength); len(missing) > 0 {
		return &AwardResult{Missing: missing}, nil
	}

	event := &models.ReputationEvent{
		SubjectID: userID,
		EventType: models.EventProfileCompleted,
		Points:    s.cfg.ProfileCompletePoints,
		Metadata:  []byte(`{}`),
	}

	inserted, err := s.ledgerRepo.AppendOnce(ctx, event)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return &AwardResult{}, nil
	}

	notify(ctx, s.notificationRepo, userID, models.NotificationScoreAward, map[string]any{
		"event_type": models.EventProfileCompleted,
		"points":     event.Points,
	})

	return &AwardResult{Awarded: true}, nil
}

// MissingProfileFields lists the json names of the profile fields that keep
// a user from the completion award.
func MissingProfileFields(user *models.User, minBio int) []string {
	var missing []string
	if user.Username == nil || strings.TrimSpace(*user.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(user.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(user.AvatarURL) == "" {
		missing = append(missing, "avatar_url")
	}
	if utf8.RuneCountInString(strings.TrimSpace(user.Bio)) < minBio {
		missing = append(missing, "bio")
	}
	return missing
}
