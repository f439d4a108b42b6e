package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/creativecommons/legal-tools-backend/api/routes"
	"github.com/creativecommons/legal-tools-backend/internal/cron"
	"github.com/creativecommons/legal-tools-backend/internal/legalcode"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/internal/publish"
	"github.com/creativecommons/legal-tools-backend/internal/render"
	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/config"
	"github.com/creativecommons/legal-tools-backend/pkg/db"
	"github.com/creativecommons/legal-tools-backend/pkg/instance"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/creativecommons/legal-tools-backend/pkg/metrics"
	"github.com/creativecommons/legal-tools-backend/pkg/migrate"
	"github.com/creativecommons/legal-tools-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	engine, err := render.NewTemplateEngine()
	if err != nil {
		logg.Error(context.Background(), "failed to parse templates", err)
		os.Exit(1)
	}

	licensesRepo := licenses.NewRepository(dbClient.DB())
	licensesService, err := licenses.NewService(licensesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create licenses service", err)
		os.Exit(1)
	}

	legalCodeService, err := legalcode.NewService(licensesService, cfg.Canonical.BaseURL)
	if err != nil {
		logg.Error(context.Background(), "failed to create legal code service", err)
		os.Exit(1)
	}

	translationsService, err := translations.NewService(translations.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create translations service", err)
		os.Exit(1)
	}

	// The publish job renders pages through the same router the API
	// serves, so published output matches live responses.
	handler := routes.NewRouter(routes.RouterParams{
		Config:       cfg,
		Logger:       logg,
		Engine:       engine,
		Redis:        redisClient,
		DBPinger:     dbClient,
		Licenses:     licensesService,
		LegalCode:    legalCodeService,
		Translations: translationsService,
	})

	publisher, err := publish.New(handler, cfg.Publish.OutputDir, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create publisher", err)
		os.Exit(1)
	}

	staleJob, err := cron.NewStaleTranslationsJob(translationsService, cfg.FeatureFlags.StaleAfter, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stale translations job", err)
		os.Exit(1)
	}

	publishJob, err := cron.NewPublishJob(licensesRepo, publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create publish job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(lockName(cfg.App.Env)), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	worker, err := cron.NewWorker(cron.WorkerParams{
		Logger:   logg,
		Jobs:     []cron.Job{staleJob, publishJob},
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.FeatureFlags.CronInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron worker", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"instance":    instance.GetID(),
	})
	logg.Info(ctx, "starting cron worker")

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockName(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("cron-worker:%s", env)
}
