package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"ethiqia/internal/config"
	handlers "ethiqia/internal/handler"
	"ethiqia/internal/logging"
	"ethiqia/internal/service"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware requires a valid Bearer token and stores its user id in the
// request context.
func AuthMiddleware(authService service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				handlers.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				handlers.WriteError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.ContextWithUserID(r.Context(), claims.UserID)))
		})
	}
}

// AdminSecretMiddleware guards admin routes with the x-admin-secret header.
// An empty configured secret disables them.
func AdminSecretMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.AdminSecret == "" {
				handlers.WriteError(w, "admin routes are disabled", http.StatusForbidden)
				return
			}

			provided := r.Header.Get("x-admin-secret")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.AdminSecret)) != 1 {
				handlers.WriteError(w, "invalid admin secret", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-admin-secret")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = xid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r.WithContext(handlers.ContextWithRequestID(r.Context(), requestID)))

		logging.WithRequestID(requestID).Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Chain wraps h so the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
