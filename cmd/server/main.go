// Package main implements the entry point for the IdeaFlow API server, which
// generates short-form video ideas and keeps each creator's idea library and
// content calendar.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run database migrations: up, down, status or version")
	setPlan := flag.String("set-plan", "", "Change a user's plan, given as email=plan")
	flag.Parse()

	if err := run(*migrateCmd, *setPlan); err != nil {
		log.Fatalf("ideaflow-api: %v", err)
	}
}

// run wires the application and either performs the one-off command selected
// by the flags or serves HTTP until SIGINT or SIGTERM.
func run(migrateCmd, setPlan string) error {
	if migrateCmd != "" && !isMigrationCommand(migrateCmd) {
		return fmt.Errorf("unknown migration command %q", migrateCmd)
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, appLogger)
		return runMigrations(ctx, db, migrateCmd, appLogger)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		closeDB(db, appLogger)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if setPlan != "" {
		defer app.cleanup()
		return app.setPlan(ctx, setPlan)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the configuration and logs its non-secret parts.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"llm_credential_present", cfg.LLM.HasCredential(),
		"quota_enabled", cfg.Redis.Enabled())

	return cfg, nil
}
