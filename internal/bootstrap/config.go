package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/target/admin-panel/config"
)

// InitLogger initializes the structured JSON logger at info level.
func InitLogger() *slog.Logger {
	return InitLoggerLevel("info")
}

// InitLoggerLevel initializes the structured logger at the named level and
// installs it as the default.
func InitLoggerLevel(level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLogLevel maps debug, info, warn and error to slog levels. Unknown
// values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	if err := loadDotEnv(); err != nil {
		return config.AppConfig{}, err
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadCLIConfig loads the adminctl configuration from ADMINCTL_* variables.
func LoadCLIConfig() (config.CLIConfig, error) {
	if err := loadDotEnv(); err != nil {
		return config.CLIConfig{}, err
	}

	var cfg config.CLIConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ADMINCTL_"}); err != nil {
		return cfg, fmt.Errorf("parse cli config: %w", err)
	}
	cfg.Sanitize()
	return cfg, nil
}

// loadDotEnv loads a .env file if it exists (development).
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}
	return nil
}
