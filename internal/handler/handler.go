package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ethiqia/internal/config"
	"ethiqia/internal/logging"
	"ethiqia/internal/service"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService         service.AuthService
	ProfileService      service.ProfileService
	PostService         service.PostService
	SocialService       service.SocialService
	NotificationService service.NotificationService
	ReputationService   service.ReputationService
	UploadService       service.UploadService
	ModerationService   service.ModerationService
	DB                  HealthChecker
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(services *service.Service, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthService:         services.Auth,
		ProfileService:      services.Profile,
		PostService:         services.Post,
		SocialService:       services.Social,
		NotificationService: services.Notification,
		ReputationService:   services.Reputation,
		UploadService:       services.Upload,
		ModerationService:   services.Moderation,
		DB:                  db,
		Cfg:                 cfg,
		Validate:            NewValidator(),
	}
}

// NewValidator reports field errors under their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate writes a 400 and returns false when the body is not a
// valid instance of dst.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			details := make(map[string]string, len(validationErrors))
			for _, fe := range validationErrors {
				details[fe.Field()] = fe.Tag()
			}
			WriteErrorDetails(w, "validation failed", details, http.StatusBadRequest)
			return false
		}
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return true
}

// requireUUID writes a 400 unless value is a UUID. Ids are UUID columns, so
// anything else would only fail inside Postgres.
func (h *Handlers) requireUUID(w http.ResponseWriter, name, value string) bool {
	if value == "" {
		WriteErrorDetails(w, "validation failed", map[string]string{name: "required"}, http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Var(value, "uuid"); err != nil {
		WriteErrorDetails(w, "validation failed", map[string]string{name: "uuid"}, http.StatusBadRequest)
		return false
	}
	return true
}

type contextKey string

const (
	userIDKey    contextKey = "userID"
	requestIDKey contextKey = "requestID"
)

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}

func requestLogger(r *http.Request) *zap.Logger {
	if requestID := RequestIDFromContext(r.Context()); requestID != "" {
		return logging.WithRequestID(requestID)
	}
	return logging.GetLogger()
}

// currentUser writes a 401 when the request carries no authenticated user.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, "authentication required", http.StatusUnauthorized)
	}
	return userID, ok
}

func queryInt(r *http.Request, key string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return fallback
	}
	return value
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.HealthCheck(ctx); err != nil {
			requestLogger(r).Warn("database health check failed", zap.Error(err))
			status["status"] = "degraded"
			status["database"] = "unreachable"
			WriteSuccess(w, status, http.StatusServiceUnavailable)
			return
		}
		status["database"] = "ok"
	}

	WriteSuccess(w, status, http.StatusOK)
}
