package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppName     = "opalcore"
	defaultAppEnv      = "development"
	defaultLogLevel    = "info"
	defaultTokenDriver = "postgres"
)

// Config captures runtime configuration for embedding applications, loaded
// from environment variables with optional .env autoload.
type Config struct {
	AppName     string
	AppEnv      string
	LogLevel    string
	DatabaseURL string
	RedisURL    string
	// TokenStoreDriver selects the token store backend: postgres or redis.
	TokenStoreDriver string
}

// Load reads configuration values from the environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TokenStoreDriver: strings.ToLower(getEnv("TOKEN_STORE_DRIVER", defaultTokenDriver)),
	}

	switch cfg.TokenStoreDriver {
	case "postgres", "redis":
	default:
		return Config{}, fmt.Errorf("invalid TOKEN_STORE_DRIVER %q", cfg.TokenStoreDriver)
	}

	if cfg.TokenStoreDriver == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.TokenStoreDriver == "redis" && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
