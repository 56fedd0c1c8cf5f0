package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Moderation struct {
	APIKey          string
	Model           string
	BlockThreshold  float64
	ReviewThreshold float64
}

// Reputation holds the point values used by the ledger writers.
type Reputation struct {
	StrikeDefaultPoints   int
	ProfileCompletePoints int
	ProfileMinBioLength   int
}

type Logging struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	Moderation           Moderation
	Reputation           Reputation
	Logging              Logging
	NatsURL              string
	AdminSecret          string
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "ethiqia"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "ethiqia"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadModeration() Moderation {
	return Moderation{
		APIKey:          getEnv("OPENAI_API_KEY", ""),
		Model:           getEnv("OPENAI_MODERATION_MODEL", "omni-moderation-latest"),
		BlockThreshold:  getEnvAsFloat("MODERATION_BLOCK_THRESHOLD", 0.8),
		ReviewThreshold: getEnvAsFloat("MODERATION_REVIEW_THRESHOLD", 0.5),
	}
}

func LoadReputation() Reputation {
	return Reputation{
		StrikeDefaultPoints:   getEnvAsInt("STRIKE_DEFAULT_POINTS", 10),
		ProfileCompletePoints: getEnvAsInt("PROFILE_COMPLETE_POINTS", 10),
		ProfileMinBioLength:   getEnvAsInt("PROFILE_MIN_BIO_LENGTH", 20),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		Moderation: LoadModeration(),
		Reputation: LoadReputation(),
		Logging: Logging{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		NatsURL:              getEnv("NATS_URL", ""),
		AdminSecret:          getEnv("ADMIN_SECRET", ""),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "5242880")),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 5 * 1024 * 1024
	}
	return size
}
