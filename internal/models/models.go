package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Ledger event types.
const (
	EventStrike           = "strike"
	EventProfileCompleted = "profile_completed"
)

// Notification types.
const (
	NotificationStrike     = "strike"
	NotificationScoreAward = "score_award"
	NotificationFollow     = "follow"
	NotificationComment    = "comment"
)

// Post moderation states.
const (
	ModerationUnchecked = "unchecked"
	ModerationApproved  = "approved"
	ModerationReview    = "review"
	ModerationBlocked   = "blocked"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Username               *string   `json:"username" db:"username"`
	FullName               string    `json:"fullName" db:"full_name"`
	Bio                    string    `json:"bio" db:"bio"`
	AvatarURL              string    `json:"avatarUrl" db:"avatar_url"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	Caption          string    `json:"caption" db:"caption"`
	AIProbability    float64   `json:"ai_probability" db:"ai_probability"`
	GlobalScore      *int      `json:"global_score" db:"global_score"`
	Blocked          bool      `json:"blocked" db:"blocked"`
	ModerationStatus string    `json:"moderation_status" db:"moderation_status"`
	ModerationReason string    `json:"moderation_reason" db:"moderation_reason"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	EthiqiaScore     int       `json:"ethiqia_score" db:"-"`
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post_id" db:"post_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReputationEvent is one append-only ledger row.
type ReputationEvent struct {
	ID        string         `json:"id" db:"id"`
	SubjectID string         `json:"subject_id" db:"subject_id"`
	EventType string         `json:"event_type" db:"event_type"`
	Points    int            `json:"points" db:"points"`
	Metadata  types.JSONText `json:"metadata" db:"metadata"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

type Notification struct {
	ID        string         `json:"id" db:"id"`
	UserID    string         `json:"user_id" db:"user_id"`
	Type      string         `json:"type" db:"type"`
	Payload   types.JSONText `json:"payload" db:"payload"`
	ReadAt    *time.Time     `json:"read_at" db:"read_at"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

type FollowStats struct {
	Followers int `json:"followers" db:"followers"`
	Following int `json:"following" db:"following"`
}
