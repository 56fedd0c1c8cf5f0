package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ethiqia/internal/config"
	handlers "ethiqia/internal/handler"
	"ethiqia/internal/models"
	"ethiqia/internal/moderation"
	"ethiqia/internal/service"
)

const (
	testUserID  = "5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11"
	testOtherID = "8d2e4a61-3b7c-4f0e-a2d9-6c5b1e0f7a22"
	testPostID  = "c3a9e2b4-7d15-4e8a-b6f0-91d2e3c4a533"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, postID, userID, body string) (*models.Comment, error) {
	args := m.Called(ctx, postID, userID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) ToggleFollow(ctx context.Context, followerID, followingID, action string) (*service.ToggleResult, error) {
	args := m.Called(ctx, followerID, followingID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ToggleResult), args.Error(1)
}

func (m *MockSocialService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) FollowStats(ctx context.Context, userID string) (*models.FollowStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FollowStats), args.Error(1)
}

func (m *MockSocialService) ToggleLike(ctx context.Context, postID, userID, action string) (*service.ToggleResult, error) {
	args := m.Called(ctx, postID, userID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ToggleResult), args.Error(1)
}

func (m *MockSocialService) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID string, req service.MarkReadRequest) (int64, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(int64), args.Error(1)
}

type MockReputationService struct {
	mock.Mock
}

func (m *MockReputationService) Score(ctx context.Context, userID string) (*service.ScoreSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScoreSummary), args.Error(1)
}

func (m *MockReputationService) IssueStrike(ctx context.Context, req service.StrikeRequest) (*service.StrikeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StrikeResult), args.Error(1)
}

func (m *MockReputationService) CompleteProfile(ctx context.Context, userID string) (*service.AwardResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AwardResult), args.Error(1)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadImage(ctx context.Context, kind string, req service.UploadRequest) (string, error) {
	args := m.Called(ctx, kind, req)
	return args.String(0), args.Error(1)
}

func (m *MockUploadService) UploadProfileAvatar(ctx context.Context, req service.UploadRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) Check(ctx context.Context, text string) (*moderation.Verdict, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*moderation.Verdict), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mocks struct {
	auth         *MockAuthService
	profile      *MockProfileService
	post         *MockPostService
	social       *MockSocialService
	notification *MockNotificationService
	reputation   *MockReputationService
	upload       *MockUploadService
	moderation   *MockModerationService
	db           *MockHealthChecker
}

func newTestConfig() *config.Config {
	return &config.Config{
		AdminSecret:   "admin-secret",
		JWTSecretKey:  "test-secret",
		MaxUploadSize: 5 << 20,
	}
}

func newTestHandlers(cfg *config.Config) (*handlers.Handlers, *mocks) {
	m := &mocks{
		auth:         new(MockAuthService),
		profile:      new(MockProfileService),
		post:         new(MockPostService),
		social:       new(MockSocialService),
		notification: new(MockNotificationService),
		reputation:   new(MockReputationService),
		upload:       new(MockUploadService),
		moderation:   new(MockModerationService),
		db:           new(MockHealthChecker),
	}

	services := &service.Service{
		Auth:         m.auth,
		Profile:      m.profile,
		Post:         m.post,
		Social:       m.social,
		Notification: m.notification,
		Reputation:   m.reputation,
		Upload:       m.upload,
		Moderation:   m.moderation,
	}

	return handlers.NewHandlers(services, m.db, cfg), m
}
