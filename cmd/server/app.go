package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ideaforge-api/internal/config"
	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/phrazzld/ideaforge-api/internal/platform/gemini"
	"github.com/phrazzld/ideaforge-api/internal/platform/metrics"
	"github.com/phrazzld/ideaforge-api/internal/platform/openai"
	"github.com/phrazzld/ideaforge-api/internal/platform/postgres"
	"github.com/phrazzld/ideaforge-api/internal/platform/redis"
	"github.com/phrazzld/ideaforge-api/internal/service/auth"
	"github.com/phrazzld/ideaforge-api/internal/store"
	gredis "github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	rdb    *gredis.Client

	categories store.CategoryStore
	jwtService auth.JWTService
	generator  *generation.Service
	metrics    *metrics.Recorder
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.NewRecorder(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.categories = postgres.NewPostgresCategoryStore(db, logger)
	if cfg.Cache.RedisURL != "" {
		app.rdb, err = redis.NewClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize category cache: %w", err)
		}
		ttl := time.Duration(cfg.Cache.CategoryTTLSeconds) * time.Second
		app.categories = redis.NewCachingCategoryStore(app.categories, app.rdb, ttl, logger)
		logger.Info("Category cache enabled", "ttl_seconds", cfg.Cache.CategoryTTLSeconds)
	}

	provider, err := newProvider(ctx, cfg.LLM, logger)
	switch {
	case errors.Is(err, generation.ErrInvalidConfig):
		// The service still starts and reports the problem on every request.
		logger.Warn("AI provider not configured", "provider", cfg.LLM.Provider, "error", err)
	case err != nil:
		if app.rdb != nil {
			_ = app.rdb.Close()
		}
		return nil, fmt.Errorf("failed to initialize AI provider: %w", err)
	default:
		logger.Info("AI provider initialized", "provider", provider.Name(), "model", cfg.LLM.Model)
	}

	app.generator = generation.NewService(
		generationConfig(cfg.LLM),
		provider,
		logger,
		generation.WithServiceObserver(app.metrics),
	)

	if report := app.generator.ConfigReport(); !report.Valid {
		logger.Warn("AI configuration is invalid", "issues", report.Issues)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newProvider builds the transport selected by cfg.Provider. A missing API key
// yields an error wrapping generation.ErrInvalidConfig and a nil provider.
func newProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Provider, error) {
	switch cfg.Provider {
	case gemini.Name:
		p, err := gemini.NewProvider(ctx, gemini.Options{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "", openai.Name:
		p, err := openai.NewProvider(openai.Options{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// generationConfig converts the process configuration into the immutable
// settings used by the generation service.
func generationConfig(cfg config.LLMConfig) generation.Config {
	return generation.Config{
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     time.Duration(cfg.TimeoutMS) * time.Millisecond,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  time.Duration(cfg.RetryDelayMS) * time.Millisecond,
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		closeDB(app.db, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}
