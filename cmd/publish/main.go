package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/creativecommons/legal-tools-backend/api/routes"
	"github.com/creativecommons/legal-tools-backend/internal/legalcode"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/internal/publish"
	"github.com/creativecommons/legal-tools-backend/internal/render"
	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/config"
	"github.com/creativecommons/legal-tools-backend/pkg/db"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
)

// publish renders every tool page through the router and writes the
// result to the output directory as a static site.
func main() {
	logg := logger.New(logger.Options{ServiceName: "publish"})

	_ = godotenv.Load()

	outputDir := flag.String("out", "", "output directory (defaults to LEGALTOOLS_PUBLISH_OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "publish",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if *outputDir == "" {
		*outputDir = cfg.Publish.OutputDir
	}

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

	// Page cache is skipped so every page renders fresh.
	handler := routes.NewRouter(routes.RouterParams{
		Config:       cfg,
		Logger:       logg,
		Engine:       engine,
		DBPinger:     dbClient,
		Licenses:     licensesService,
		LegalCode:    legalCodeService,
		Translations: translationsService,
	})

	publisher, err := publish.New(handler, *outputDir, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create publisher", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "output_dir", *outputDir)

	rows, err := licensesRepo.ListAllWithLegalCodes(ctx, enums.Category(""))
	if err != nil {
		logg.Error(ctx, "failed to list licenses", err)
		os.Exit(1)
	}

	paths := publish.SitePaths(rows)
	logg.Info(logg.WithField(ctx, "pages", len(paths)), "publishing static site")

	if err := publisher.PublishAll(ctx, paths); err != nil {
		logg.Error(ctx, "publish completed with errors", err)
		os.Exit(1)
	}

	logg.Info(ctx, "publish complete")
}
