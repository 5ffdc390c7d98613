package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// TokenSigningKey verifies session tokens minted by the external
	// identity service. This core only verifies, it never issues tokens.
	TokenSigningKey string `env:"TOKEN_SIGNING_KEY"`

	FileStoreURL     string        `env:"FILESTORE_URL"`
	FileStoreTimeout time.Duration `env:"FILESTORE_TIMEOUT" default:"15s"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	APIRatePerSecond float64 `env:"API_RATE_PER_SECOND" default:"20"`
	APIRateBurst     int     `env:"API_RATE_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL":      cfg.DatabaseURL,
		"REDIS_URL":         cfg.RedisURL,
		"TOKEN_SIGNING_KEY": cfg.TokenSigningKey,
		"FILESTORE_URL":     cfg.FileStoreURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.TokenSigningKey) < 32 {
		return errors.New("TOKEN_SIGNING_KEY must be at least 32 characters")
	}

	if cfg.FileStoreTimeout <= 0 {
		return errors.New("FILESTORE_TIMEOUT must be positive")
	}

	return nil
}
