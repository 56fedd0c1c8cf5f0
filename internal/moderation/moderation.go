package moderation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"ethiqia/internal/config"
)

var ErrNoResult = errors.New("moderation returned no result")

// Verdict is the outcome of a moderation check after thresholds are applied.
type Verdict struct {
	Flagged     bool               `json:"flagged"`
	Blocked     bool               `json:"blocked"`
	Review      bool               `json:"review"`
	TopCategory string             `json:"top_category"`
	TopScore    float64            `json:"top_score"`
	Categories  map[string]float64 `json:"categories"`
}

type Moderator interface {
	Moderate(ctx context.Context, text string) (*Verdict, error)
}

type moderationAPI interface {
	Moderations(ctx context.Context, request openai.ModerationRequest) (openai.ModerationResponse, error)
}

type OpenAIModerator struct {
	api             moderationAPI
	model           string
	blockThreshold  float64
	reviewThreshold float64
}

// New returns nil when no API key is configured.
func New(cfg config.Moderation) Moderator {
	if cfg.APIKey == "" {
		return nil
	}
	return newOpenAIModerator(openai.NewClient(cfg.APIKey), cfg)
}

func newOpenAIModerator(api moderationAPI, cfg config.Moderation) *OpenAIModerator {
	return &OpenAIModerator{
		api:             api,
		model:           cfg.Model,
		blockThreshold:  cfg.BlockThreshold,
		reviewThreshold: cfg.ReviewThreshold,
	}
}

func (m *OpenAIModerator) Moderate(ctx context.Context, text string) (*Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return &Verdict{Categories: map[string]float64{}}, nil
	}

	resp, err := m.api.Moderations(ctx, openai.ModerationRequest{
		Input: text,
		Model: m.model,
	})
	if err != nil {
		return nil, fmt.Errorf("call moderation api: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResult
	}

	result := resp.Results[0]
	verdict := Evaluate(result.Flagged, categoryScores(result.CategoryScores), m.blockThreshold, m.reviewThreshold)
	return &verdict, nil
}

func categoryScores(s openai.ResultCategoryScores) map[string]float64 {
	return map[string]float64{
		"hate":                   float64(s.Hate),
		"hate/threatening":       float64(s.HateThreatening),
		"harassment":             float64(s.Harassment),
		"harassment/threatening": float64(s.HarassmentThreatening),
		"self-harm":              float64(s.SelfHarm),
		"self-harm/intent":       float64(s.SelfHarmIntent),
		"self-harm/instructions": float64(s.SelfHarmInstructions),
		"sexual":                 float64(s.Sexual),
		"sexual/minors":          float64(s.SexualMinors),
		"violence":               float64(s.Violence),
		"violence/graphic":       float64(s.ViolenceGraphic),
	}
}

// Evaluate applies the block and review thresholds to per-category scores.
// A flagged result is always blocked.
func Evaluate(flagged bool, scores map[string]float64, blockThreshold, reviewThreshold float64) Verdict {
	verdict := Verdict{Flagged: flagged, Blocked: flagged, Categories: scores}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		score := scores[name]
		if score > verdict.TopScore {
			verdict.TopScore = score
			verdict.TopCategory = name
		}
	}

	if verdict.TopScore >= blockThreshold {
		verdict.Blocked = true
	}
	if verdict.Blocked || verdict.TopScore >= reviewThreshold {
		verdict.Review = true
	}

	return verdict
}
