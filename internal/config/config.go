// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all server configuration values.
type Config struct {
	// HTTP
	ListenAddr string `env:"WELLKEEP_LISTEN_ADDR" envDefault:":8484"`
	BasePath   string `env:"WELLKEEP_BASE_PATH" envDefault:"/api/v1"`
	AuthToken  string `env:"WELLKEEP_AUTH_TOKEN,required,notEmpty"`

	// SurrealDB connection
	SurrealDBURL       string `env:"WELLKEEP_SURREALDB_URL" envDefault:"ws://localhost:8000/rpc"`
	SurrealDBNamespace string `env:"WELLKEEP_SURREALDB_NAMESPACE" envDefault:"wellkeep"`
	SurrealDBDatabase  string `env:"WELLKEEP_SURREALDB_DATABASE" envDefault:"records"`
	SurrealDBUser      string `env:"WELLKEEP_SURREALDB_USER" envDefault:"root"`
	SurrealDBPass      string `env:"WELLKEEP_SURREALDB_PASS" envDefault:"root"`
	SurrealDBAuthLevel string `env:"WELLKEEP_SURREALDB_AUTH_LEVEL" envDefault:"root"`

	// Photo blob storage (S3-compatible)
	S3Endpoint       string        `env:"WELLKEEP_S3_ENDPOINT"`
	S3Bucket         string        `env:"WELLKEEP_S3_BUCKET" envDefault:"wellkeep-memories"`
	S3Region         string        `env:"WELLKEEP_S3_REGION" envDefault:"us-east-1"`
	S3AccessKey      string        `env:"WELLKEEP_S3_ACCESS_KEY"`
	S3SecretKey      string        `env:"WELLKEEP_S3_SECRET_KEY"`
	S3ForcePathStyle bool          `env:"WELLKEEP_S3_FORCE_PATH_STYLE" envDefault:"false"`
	SignTTL          time.Duration `env:"WELLKEEP_SIGN_TTL" envDefault:"1h"`

	// Orphaned photo sweep (cron expression)
	SweepSchedule string `env:"WELLKEEP_SWEEP_SCHEDULE" envDefault:"0 3 * * *"`

	// Logging
	LogFile  string `env:"WELLKEEP_LOG_FILE" envDefault:"/tmp/wellkeep.log"`
	LogLevel string `env:"WELLKEEP_LOG_LEVEL" envDefault:"INFO"`
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (Config, error) {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Level returns the configured log level, defaulting to info for unknown
// values.
func (c Config) Level() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
