package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"ethiqia/internal/config"
	handlers "ethiqia/internal/handler"
	"ethiqia/internal/middleware"
	"ethiqia/internal/service"
)

func NewRouter(h *handlers.Handlers, authService service.AuthService, cfg *config.Config) http.Handler {
	router := mux.NewRouter()

	authed := middleware.AuthMiddleware(authService)
	admin := middleware.AdminSecretMiddleware(cfg)

	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)

	api.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}/comments", h.GetComments).Methods(http.MethodGet)
	api.Handle("/posts/{id}/comments", authed(http.HandlerFunc(h.CreateComment))).Methods(http.MethodPost)

	api.HandleFunc("/follow", h.GetFollow).Methods(http.MethodGet)
	api.HandleFunc("/follow", h.ToggleFollow).Methods(http.MethodPost)
	api.HandleFunc("/follow-stats", h.FollowStats).Methods(http.MethodGet)
	api.HandleFunc("/likes", h.GetLike).Methods(http.MethodGet)
	api.HandleFunc("/likes", h.ToggleLike).Methods(http.MethodPost)

	api.Handle("/notifications", authed(http.HandlerFunc(h.GetNotifications))).Methods(http.MethodGet)
	api.Handle("/notifications", authed(http.HandlerFunc(h.MarkNotificationsRead))).Methods(http.MethodPost)

	api.Handle("/score", authed(http.HandlerFunc(h.GetScore))).Methods(http.MethodGet)
	api.HandleFunc("/score/demo", h.GetDemoScore).Methods(http.MethodGet)

	api.Handle("/profile", authed(http.HandlerFunc(h.GetProfile))).Methods(http.MethodGet)
	api.Handle("/profile", authed(http.HandlerFunc(h.UpdateProfile))).Methods(http.MethodPut)
	api.Handle("/profile/complete-min", authed(http.HandlerFunc(h.CompleteProfile))).Methods(http.MethodPost)
	api.Handle("/profile/upload", authed(http.HandlerFunc(h.UploadProfileAvatar))).Methods(http.MethodPost)

	api.Handle("/upload", authed(http.HandlerFunc(h.UploadPostImage))).Methods(http.MethodPost)
	api.Handle("/upload-avatar", authed(http.HandlerFunc(h.UploadAvatar))).Methods(http.MethodPost)

	api.Handle("/moderation/strike", admin(http.HandlerFunc(h.IssueStrike))).Methods(http.MethodPost)
	api.HandleFunc("/moderation/check", h.CheckModeration).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)
}
