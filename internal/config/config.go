package config

import (
	"os"
	"strconv"
	"time"

	"github.com/diewo77/interiorhome/internal/logger"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	LogLevel    string
	SessionTTL  time.Duration
}

// Load reads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:interiorhome.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.SessionTTL = parseDuration("SESSION_TTL", 14*24*time.Hour)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.L.Warn().Str("key", key).Str("value", v).Msg("invalid duration, using default")
			return def
		}
		return d
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.L.Warn().Str("key", key).Str("value", v).Msg("invalid boolean, using default")
			return def
		}
		return b
	}
	return def
}
