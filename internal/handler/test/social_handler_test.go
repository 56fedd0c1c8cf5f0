package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ethiqia/internal/models"
	"ethiqia/internal/service"
)

func TestToggleLikeHandler_CreatedThenExisting(t *testing.T) {
	h, m := newTestHandlers(newTestConfig())
	m.social.On("ToggleLike", mock.Anything, testPostID, testUserID, "like").
		Return(&service.ToggleResult{Active: true, Created: true}, nil).Once()
	m.social.On("ToggleLike", mock.Anything, testPostID, testUserID, "like").
		Return(&service.ToggleResult{Active: true}, nil).Once()

	body := `{"postId":"c3a9e2b4-7d15-4e8a-b6f0-91d2e3c4a533","userId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11","action":"like"}`

	first := httptest.NewRecorder()
	h.ToggleLike(first, httptest.NewRequest(http.MethodPost, "/api/likes", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"liked":true}`, first.Body.String())

	second := httptest.NewRecorder()
	h.ToggleLike(second, httptest.NewRequest(http.MethodPost, "/api/likes", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"liked":true}`, second.Body.String())
}

func TestToggleLikeHandler_BareFlipAlternates(t *testing.T) {
	h, m := newTestHandlers(newTestConfig())
	m.social.On("ToggleLike", mock.Anything, testPostID, testUserID, "").
		Return(&service.ToggleResult{Active: true, Created: true}, nil).Once()
	m.social.On("ToggleLike", mock.Anything, testPostID, testUserID, "").
		Return(&service.ToggleResult{Active: false}, nil).Once()

	body := `{"postId":"c3a9e2b4-7d15-4e8a-b6f0-91d2e3c4a533","userId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11"}`

	first := httptest.NewRecorder()
	h.ToggleLike(first, httptest.NewRequest(http.MethodPost, "/api/likes", strings.NewReader(body)))
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.JSONEq(t, `{"liked":true}`, first.Body.String())

	second := httptest.NewRecorder()
	h.ToggleLike(second, httptest.NewRequest(http.MethodPost, "/api/likes", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"liked":false}`, second.Body.String())

	m.social.AssertExpectations(t)
}

func TestToggleFollowHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockSocialService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "self follow",
			body: `{"followerId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11","followingId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11"}`,
			mockSetup: func(svc *MockSocialService) {
				svc.On("ToggleFollow", mock.Anything, testUserID, testUserID, "").Return(nil, service.ErrSelfFollow)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unfollow",
			body: `{"followerId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11","followingId":"8d2e4a61-3b7c-4f0e-a2d9-6c5b1e0f7a22","action":"unfollow"}`,
			mockSetup: func(svc *MockSocialService) {
				svc.On("ToggleFollow", mock.Anything, testUserID, testOtherID, "unfollow").Return(&service.ToggleResult{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"following":false}`,
		},
		{
			name: "flip creates",
			body: `{"followerId":"5f0c7f3e-1f6b-4c53-9a5e-2d1c0b7a9e11","followingId":"8d2e4a61-3b7c-4f0e-a2d9-6c5b1e0f7a22"}`,
			mockSetup: func(svc *MockSocialService) {
				svc.On("ToggleFollow", mock.Anything, testUserID, testOtherID, "").Return(&service.ToggleResult{Active: true, Created: true}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"following":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(newTestConfig())
			tt.mockSetup(m.social)

			rr := httptest.NewRecorder()
			h.ToggleFollow(rr, httptest.NewRequest(http.MethodPost, "/api/follow", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestFollowStatsHandler(t *testing.T) {
	t.Run("missing user id", func(t *testing.T) {
		h, _ := newTestHandlers(newTestConfig())

		rr := httptest.NewRecorder()
		h.FollowStats(rr, httptest.NewRequest(http.MethodGet, "/api/follow-stats", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("counts", func(t *testing.T) {
		h, m := newTestHandlers(newTestConfig())
		m.social.On("FollowStats", mock.Anything, testUserID).Return(&models.FollowStats{Followers: 2, Following: 7}, nil)

		rr := httptest.NewRecorder()
		h.FollowStats(rr, httptest.NewRequest(http.MethodGet, "/api/follow-stats?userId="+testUserID, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"followers":2,"following":7}`, rr.Body.String())
	})
}

func TestEdgeStatusHandlers(t *testing.T) {
	h, m := newTestHandlers(newTestConfig())
	m.social.On("IsLiked", mock.Anything, testPostID, testUserID).Return(true, nil)
	m.social.On("IsFollowing", mock.Anything, testUserID, testOtherID).Return(false, nil)

	liked := httptest.NewRecorder()
	h.GetLike(liked, httptest.NewRequest(http.MethodGet, "/api/likes?postId="+testPostID+"&userId="+testUserID, nil))
	assert.JSONEq(t, `{"liked":true}`, liked.Body.String())

	following := httptest.NewRecorder()
	h.GetFollow(following, httptest.NewRequest(http.MethodGet, "/api/follow?followerId="+testUserID+"&followingId="+testOtherID, nil))
	assert.JSONEq(t, `{"following":false}`, following.Body.String())

	missing := httptest.NewRecorder()
	h.GetLike(missing, httptest.NewRequest(http.MethodGet, "/api/likes?postId="+testPostID, nil))
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}
