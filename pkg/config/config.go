// Package config reads application configuration from environment
// variables, with .env file support for local use.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// StatementDir is the folder scanned for statement PDFs.
	StatementDir string
	// OutputDir receives the generated CSV/XLSX files.
	OutputDir string
	// AccountsCSV is the chart-of-accounts export path; optional, but
	// classification quality drops without it.
	AccountsCSV string
	// HolderName is the account holder's printed name, skipped as
	// statement boilerplate.
	HolderName string
	// HomeCurrency is the statement's billing currency.
	HomeCurrency string
	// PdftotextBin overrides the pdftotext binary path.
	PdftotextBin string
	// LogLevel is one of debug, info, warn, error.
	LogLevel slog.Level
}

// Load reads configuration from the environment, consulting a .env file
// when one exists alongside the binary.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		StatementDir: getEnv("STATEMENT_DIR", "."),
		OutputDir:    getEnv("OUTPUT_DIR", "."),
		AccountsCSV:  getEnv("ACCOUNTS_CSV", ""),
		HolderName:   getEnv("HOLDER_NAME", ""),
		HomeCurrency: getEnv("HOME_CURRENCY", "PHP"),
		PdftotextBin: getEnv("PDFTOTEXT_BIN", "pdftotext"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.HomeCurrency == "" {
		return nil, errors.New("HOME_CURRENCY must not be empty")
	}

	return cfg, nil
}

// Logger builds the application logger at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
