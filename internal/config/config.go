package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabase is used when MONGODB_DATABASE is unset.
const DefaultDatabase = "your_database_name"

// Config holds all runtime configuration loaded from environment variables.
// Every field has a default. MONGODB_URI may be empty: the service still
// starts and database resolution reports domain.ErrConfigMissing.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	MongoURI                    string
	MongoDatabase               string
	MongoServerSelectionTimeout time.Duration
	MongoConnectTimeout         time.Duration

	// Rate limiting: maximum requests per second across the API, 0 disables it
	RateLimit int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set in the process. A missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8000"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		MongoURI:                    os.Getenv("MONGODB_URI"),
		MongoDatabase:               getEnv("MONGODB_DATABASE", DefaultDatabase),
		MongoServerSelectionTimeout: getDuration("MONGODB_SERVER_SELECTION_TIMEOUT", 30*time.Second),
		MongoConnectTimeout:         getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),

		RateLimit: getInt("RATE_LIMIT_RPS", 0),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %d", cfg.RateLimit)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
