package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL string
	RedisURL    string

	// Connection pool
	MaxConns int32

	// Auth
	AuthIssuer   string
	AuthAudience string
	AuthDisabled bool

	// Cache
	CacheTTL time.Duration

	// Query defaults
	DefaultSeason      string
	DefaultCompetition string
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		MaxConns: int32(getEnvInt("PG_MAX_CONNS", 5)),

		AuthDisabled: getEnvBool("AUTH_DISABLED", false),

		CacheTTL: getEnvDuration("CACHE_TTL", 90*time.Second),

		DefaultSeason:      getEnv("DEFAULT_SEASON", "2024-2025"),
		DefaultCompetition: getEnv("DEFAULT_COMPETITION", "ENG-Premier League"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	// The token boundary needs an issuer and audience unless bypassed
	if !cfg.AuthDisabled {
		if cfg.AuthIssuer, err = getEnvRequired("AUTH_ISSUER"); err != nil {
			return nil, err
		}
		if cfg.AuthAudience, err = getEnvRequired("AUTH_AUDIENCE"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
