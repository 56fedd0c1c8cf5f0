package app

import (
	"go.uber.org/zap"

	"ethiqia/internal/config"
	"ethiqia/internal/database"
	"ethiqia/internal/events"
	"ethiqia/internal/logging"
	"ethiqia/internal/moderation"
	"ethiqia/internal/repository"
	"ethiqia/internal/service"
	"ethiqia/internal/storage"
)

// App connects the backing services and wires the service layer. The
// returned cleanup closes them in reverse order.
func App(cfg *config.Config) (*database.DB, *service.Service, func()) {
	logger := logging.WithComponent("app")

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize MinIO", zap.Error(err))
	}

	publisher, closePublisher, err := events.Connect(cfg.NatsURL)
	if err != nil {
		logger.Fatal("failed to connect to NATS", zap.Error(err))
	}

	moderator := moderation.New(cfg.Moderation)
	if moderator == nil {
		logger.Info("OPENAI_API_KEY not set, caption moderation disabled")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, moderator, publisher)

	cleanup := func() {
		closePublisher()
		if err := db.CloseDB(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}

	return db, services, cleanup
}
