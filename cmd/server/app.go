package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/phrazzld/ideaflow-api/internal/generation"
	"github.com/phrazzld/ideaflow-api/internal/platform/gemini"
	"github.com/phrazzld/ideaflow-api/internal/platform/postgres"
	redisplatform "github.com/phrazzld/ideaflow-api/internal/platform/redis"
	"github.com/phrazzld/ideaflow-api/internal/service"
	"github.com/phrazzld/ideaflow-api/internal/service/auth"
	"github.com/phrazzld/ideaflow-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	userStore store.UserStore
	ideaStore store.IdeaStore

	jwtService       auth.JWTService
	passwordVerifier *auth.BcryptVerifier
	generator        generation.Generator
	quota            service.QuotaChecker

	userService service.UserService
	ideaService service.IdeaService
}

// newApplication creates the application with all dependencies initialized.
// The language model client is only created when an API key is configured,
// and the quota only when a Redis address is.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier(cfg.Auth.BCryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.ideaStore = postgres.NewPostgresIdeaStore(db, logger)

	if cfg.Redis.Enabled() {
		app.redis, err = redisplatform.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize quota store: %w", err)
		}
		app.quota = redisplatform.NewQuota(app.redis, redisplatform.Limits{
			Free: cfg.Quota.FreeDaily,
			Pro:  cfg.Quota.ProDaily,
		})
		logger.Info("Generation quota enabled",
			"free_daily", cfg.Quota.FreeDaily,
			"pro_daily", cfg.Quota.ProDaily)
	} else {
		logger.Info("Generation quota disabled: no Redis address configured")
	}

	app.generator, err = newGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		app.closeRedis()
		return nil, err
	}

	app.userService = service.NewUserService(app.userStore, app.passwordVerifier, app.passwordVerifier,
		app.quota, logger)

	app.ideaService, err = service.NewIdeaService(
		service.NewIdeaRepositoryAdapter(app.ideaStore, db),
		app.userStore,
		app.generator,
		app.quota,
		logger,
	)
	if err != nil {
		app.closeRedis()
		return nil, fmt.Errorf("failed to create idea service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newGenerator builds the idea generator. Without a credential the generator
// has no client and answers every request from the offline fallback.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	var client generation.CompletionClient
	if cfg.HasCredential() {
		geminiClient, err := gemini.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
		}
		client = geminiClient
		logger.Info("LLM client initialized", "model", cfg.ModelName)
	} else {
		logger.Warn("No Gemini API key configured, ideas will come from the offline fallback")
	}

	return generation.NewIdeaGenerator(client, logger,
		generation.WithModel(cfg.ModelName),
		generation.WithTemperature(cfg.Temperature),
	), nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(routerDeps{
		logger:      app.logger,
		authConfig:  &app.config.Auth,
		jwtService:  app.jwtService,
		userService: app.userService,
		ideaService: app.ideaService,
	})

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setPlan applies an "email=plan" assignment from the -set-plan flag.
func (app *application) setPlan(ctx context.Context, assignment string) error {
	email, plan, err := parsePlanAssignment(assignment)
	if err != nil {
		return err
	}

	user, err := app.userStore.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find user %q: %w", email, err)
	}

	return app.userService.ChangePlan(ctx, user.ID, plan)
}

func parsePlanAssignment(assignment string) (string, domain.Plan, error) {
	email, planName, ok := strings.Cut(assignment, "=")
	email = strings.TrimSpace(email)
	if !ok || email == "" {
		return "", "", fmt.Errorf("invalid plan assignment %q: expected email=plan", assignment)
	}

	plan := domain.Plan(strings.ToLower(strings.TrimSpace(planName)))
	if !plan.IsValid() {
		return "", "", fmt.Errorf("invalid plan assignment %q: %w", assignment, domain.ErrInvalidPlan)
	}
	return email, plan, nil
}

// cleanup releases the connections held by the application.
func (app *application) cleanup() {
	app.closeRedis()

	if app.db != nil {
		closeDB(app.db, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}

func (app *application) closeRedis() {
	if app.redis == nil {
		return
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error("Error closing Redis connection", "error", err)
	}
	app.redis = nil
}
