package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"ethiqia/internal/config"
	"ethiqia/internal/logging"
)

const migrationFile = "migrations/001_create_tables.sql"

type DB struct {
	*sqlx.DB
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.DbHOST,
		cfg.DB.DbPORT,
		cfg.DB.DbUSER,
		cfg.DB.DbPASSWORD,
		cfg.DB.DbNAME,
		cfg.DB.DbSSLMODE,
	)

	logger := logging.WithComponent("database")
	logger.Info("connecting to postgres", zap.String("host", cfg.DB.DbHOST), zap.String("dbname", cfg.DB.DbNAME))

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(migrationFile); err != nil {
		logger.Warn("migrations not applied", zap.Error(err))
	}

	if err := dbStruct.HealthCheck(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check: %w", err)
	}

	logger.Info("connected to postgres")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) RunMigrations(migrationFilePath string) error {
	migrationSQL, err := os.ReadFile(migrationFilePath)
	if err != nil {
		return fmt.Errorf("read migrations %s: %w", migrationFilePath, err)
	}

	if _, err := db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	logging.WithComponent("database").Info("migrations applied", zap.String("file", migrationFilePath))
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.PingContext(ctx)
}
