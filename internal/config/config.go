package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config is the process-level configuration read from the environment.
// Simulation tuning lives in sim.Config and is loaded from SimConfigPath.
type Config struct {
	Environment   string
	LogLevel      slog.Level
	SimConfigPath string // optional YAML overlay for sim.Config
	Seed          int64  // 0 = seed from the clock
	Debug         bool   // start with the inspector visible
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		SimConfigPath: getEnv("PARK_SIM_CONFIG", ""),
		Seed:          parseInt64(getEnv("PARK_SEED", "0")),
		Debug:         parseBool(getEnv("PARK_DEBUG", "false")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
