package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/creativecommons/legal-tools-backend/api/routes"
	"github.com/creativecommons/legal-tools-backend/internal/legalcode"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/internal/render"
	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/config"
	"github.com/creativecommons/legal-tools-backend/pkg/db"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/creativecommons/legal-tools-backend/pkg/metrics"
	"github.com/creativecommons/legal-tools-backend/pkg/migrate"
	"github.com/creativecommons/legal-tools-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:       cfg,
			Logger:       logg,
			Engine:       engine,
			HTTPMetrics:  metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
			Redis:        redisClient,
			DBPinger:     dbClient,
			Licenses:     licensesService,
			LegalCode:    legalCodeService,
			Translations: translationsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
