// Command migrate brings the identity schema up to date.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/somukhan9/dapper-identity/internal/config"
	"github.com/somukhan9/dapper-identity/internal/logging"
	"github.com/somukhan9/dapper-identity/internal/repositories/repomanager"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	m, err := repomanager.NewPostgresManager(cfg, logger)
	if err != nil {
		logger.Error(ctx, "open database failed", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	if err := m.Ping(ctx); err != nil {
		logger.Error(ctx, "database unreachable", "error", err)
		os.Exit(1)
	}

	if err := m.RunMigrations(ctx); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	logger.Info(ctx, "schema is up to date")
}
