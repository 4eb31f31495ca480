package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Client settings.
	APIBaseURL  string
	HTTPTimeout time.Duration
	SessionPath string
	RateLimit   float64 // requests per second, 0 disables the client throttle
	RateBurst   int

	// Stub server settings.
	Port      string
	Env       string
	JWTSecret string
	JWTExpiry time.Duration
}

func Load() Config {
	cfg := Config{
		APIBaseURL:  getEnv("STOCKWATCH_API_URL", "http://localhost:8080/api"),
		HTTPTimeout: getEnvDuration("STOCKWATCH_HTTP_TIMEOUT", 10*time.Second),
		SessionPath: getEnv("STOCKWATCH_SESSION_PATH", defaultSessionPath()),
		RateLimit:   getEnvFloat("STOCKWATCH_RATE_LIMIT", 0),
		RateBurst:   getEnvInt("STOCKWATCH_RATE_BURST", 1),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   24 * time.Hour,
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// defaultSessionPath places the session database under the user's home
// directory, falling back to the working directory when home is unknown.
func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stockwatch-session.db"
	}
	return filepath.Join(home, ".stockwatch", "session.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("invalid number in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}
