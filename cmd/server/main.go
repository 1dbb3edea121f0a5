// Package main implements the entry point for the IdeaForge API server,
// which turns user prompts and category contexts into AI-generated ideas.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/ideaforge-api/internal/config"
	"github.com/phrazzld/ideaforge-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a database migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration and logging, then either executes the requested
// migration command or serves HTTP until shutdown.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"cache_enabled", cfg.Cache.RedisURL != "")

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, log)
		return runMigrations(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
