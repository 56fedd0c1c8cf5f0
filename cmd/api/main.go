package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ethiqia/cmd/app"
	"ethiqia/internal/config"
	handlers "ethiqia/internal/handler"
	"ethiqia/internal/logging"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if err := logging.InitLogger(cfg.Logging); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	logger := logging.GetLogger()
	defer logger.Sync()

	if cfg.JWTSecretKey == "" {
		logger.Fatal("JWT_SECRET_KEY is not set")
	}

	db, services, cleanup := app.App(cfg)
	defer cleanup()

	handler := handlers.NewHandlers(services, db, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           app.NewRouter(handler, services.Auth, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server started",
			zap.String("addr", server.Addr),
			zap.String("database", cfg.DB.DbNAME),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
