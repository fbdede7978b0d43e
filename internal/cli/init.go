// Package cli provides common initialization shared by cmd/bills and
// cmd/bills-worker.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/BistonN/Bills-bot/internal/config"
	"github.com/BistonN/Bills-bot/internal/sheets"
	"github.com/BistonN/Bills-bot/internal/sheets/google"
	"github.com/BistonN/Bills-bot/internal/sheets/memory"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewWorksheetStore builds the configured worksheet store backend.
func NewWorksheetStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sheets.WorksheetStore, error) {
	switch cfg.WorksheetBackend {
	case "sheets":
		id, err := cfg.ResolveSpreadsheetID()
		if err != nil {
			return nil, fmt.Errorf("resolve spreadsheet ID: %w", err)
		}
		client, err := google.NewClient(ctx, google.Config{
			SpreadsheetID:      id,
			ServiceAccountJSON: cfg.ServiceAccountJSON,
			ServiceAccountFile: cfg.ServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		logger.Info("Initialized Google Sheets backend", "spreadsheet_id", id)
		return client, nil
	default:
		logger.Info("Initialized memory backend")
		return memory.NewStore(), nil
	}
}
