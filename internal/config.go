package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// SessionTTL evicts idle sessions. Zero keeps sessions forever.
	SessionTTL time.Duration

	// SimulatedLatency delays every session operation, making the
	// per-session in-flight guard observable in demos. Leave zero in
	// production.
	SimulatedLatency time.Duration

	// OrderIDScheme selects how order numbers are generated:
	// "timestamp" (legacy format) or "random".
	OrderIDScheme string
}

// LoadConfig loads configuration from .env and the environment.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	return &Config{
		Env:              getEnv("ENV", "dev"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnvInt("PORT", 3000),
		SessionTTL:       getEnvDuration("SESSION_TTL", 2*time.Hour),
		SimulatedLatency: getEnvDuration("SIMULATED_LATENCY", 0),
		OrderIDScheme:    getEnv("ORDER_ID_SCHEME", "timestamp"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
