package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for golang-migrate
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/config"
	"github.com/ekaya-inc/ekaya-l10n/pkg/database"
	"github.com/ekaya-inc/ekaya-l10n/pkg/logging"
	"github.com/ekaya-inc/ekaya-l10n/pkg/repositories"
	"github.com/ekaya-inc/ekaya-l10n/pkg/retry"
	"github.com/ekaya-inc/ekaya-l10n/pkg/services"
)

// app holds the connections and services shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB
	redis  *redis.Client

	translations  services.TranslationService
	recalculation services.StatsRecalculationService
}

// connectDB opens the pool, retrying while PostgreSQL comes up.
func connectDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*database.DB, error) {
	url := cfg.Database.URL()
	logger.Info("Connecting to database",
		zap.String("url", logging.SanitizeConnectionString(url)),
		zap.Int32("max_connections", cfg.Database.MaxConnections))

	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		db, err := database.NewConnection(ctx, &database.Config{
			URL:            url,
			MaxConnections: cfg.Database.MaxConnections,
		})
		if err != nil {
			logger.Warn("Database not ready", zap.String("error", logging.SanitizeError(err)))
		}
		return db, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %s", logging.SanitizeError(err))
	}
	return db, nil
}

// migrate applies embedded migrations over a short-lived database/sql handle.
func migrate(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, logger)
}

// newApp connects to the stores and wires every service.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := connectDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %s", logging.SanitizeError(err))
	}
	if redisClient == nil {
		logger.Info("Redis not configured, stats change notifications disabled")
	}

	a := &app{cfg: cfg, logger: logger, db: db, redis: redisClient}
	a.wire()
	return a, nil
}

func (a *app) wire() {
	localeRepo := repositories.NewLocaleRepository()
	projectRepo := repositories.NewProjectRepository()
	entityRepo := repositories.NewEntityRepository()
	translationRepo := repositories.NewTranslationRepository()
	aggregateRepo := repositories.NewAggregateRepository()

	cache := services.NewScopeCache(a.cfg.Stats.CacheSize, a.cfg.Stats.CacheTTL, projectRepo, localeRepo)
	counter := services.NewEntityStringCounter(entityRepo)

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = a.cfg.Stats.TransitionRetries

	var checker services.QualityChecker = services.NoopQualityChecker{}
	if a.cfg.Stats.QualityChecks == "basic" {
		checker = services.BasicQualityChecker{}
	}

	a.translations = services.NewTranslationService(&services.TranslationServiceDeps{
		DB:              a.db,
		TranslationRepo: translationRepo,
		EntityRepo:      entityRepo,
		TMRepo:          repositories.NewTranslationMemoryRepository(),
		ActionLog:       services.NewActionLogService(repositories.NewActionLogRepository(), a.logger),
		Rollup: services.NewStatsRollup(&services.StatsRollupDeps{
			AggregateRepo: aggregateRepo,
			ProjectRepo:   projectRepo,
			Counter:       counter,
			Cache:         cache,
			Logger:        a.logger,
		}),
		Cache:          cache,
		ReadOnly:       services.NewReadOnlyChecker(projectRepo),
		QualityChecker: checker,
		Notifier:       services.NewRedisStatsNotifier(a.redis, a.cfg.Redis.Channel, a.logger),
		Retry:          retryCfg,
		Logger:         a.logger,
	})
	a.recalculation = services.NewStatsRecalculationService(&services.StatsRecalculationDeps{
		DB:              a.db,
		ProjectRepo:     projectRepo,
		EntityRepo:      entityRepo,
		TranslationRepo: translationRepo,
		AggregateRepo:   aggregateRepo,
		Counter:         counter,
		Cache:           cache,
		Retry:           retryCfg,
		Logger:          a.logger,
	})
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	a.db.Close()
}
