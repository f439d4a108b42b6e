package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/creativecommons/legal-tools-backend/api/controllers"
	"github.com/creativecommons/legal-tools-backend/api/middleware"
	"github.com/creativecommons/legal-tools-backend/internal/legalcode"
	"github.com/creativecommons/legal-tools-backend/internal/licenses"
	"github.com/creativecommons/legal-tools-backend/internal/render"
	"github.com/creativecommons/legal-tools-backend/internal/translations"
	"github.com/creativecommons/legal-tools-backend/pkg/config"
	"github.com/creativecommons/legal-tools-backend/pkg/enums"
	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/creativecommons/legal-tools-backend/pkg/metrics"
	"github.com/creativecommons/legal-tools-backend/pkg/redis"
)

// RouterParams carries everything the router wires together.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	Engine       *render.TemplateEngine
	HTTPMetrics  *metrics.HTTPMetrics
	Redis        *redis.Client
	DBPinger     controllers.Pinger
	Licenses     licenses.Service
	LegalCode    legalcode.Service
	Translations translations.Service
}

// NewRouter assembles the HTTP surface: the public page routes, the
// status pages, health and metrics endpoints, and the dev-only JSON API.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, map[string]controllers.Pinger{
			"database": p.DBPinger,
			"redis":    redisPinger(p.Redis),
		}))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	var pageCache func(http.Handler) http.Handler
	if p.Redis != nil && p.Config.Cache.Enabled {
		pageCache = middleware.PageCache(p.Redis, p.Config.Cache.TTL, p.Logger)
	} else {
		pageCache = passthrough
	}

	r.Group(func(r chi.Router) {
		r.Use(pageCache)

		r.Get("/", controllers.Home(p.Engine, p.Logger))

		registerToolPages(r, "/licenses", enums.CategoryLicenses, p)
		registerToolPages(r, "/publicdomain", enums.CategoryPublicDomain, p)
	})

	r.Route("/status", func(r chi.Router) {
		r.Get("/", controllers.TranslationStatus(p.Translations, p.Engine, p.Logger))
		r.Get("/{branch}", controllers.BranchStatus(p.Translations, p.Engine, p.Logger))
	})

	if !p.Config.App.IsProd() {
		r.Get("/dev/index", controllers.DevIndex(p.Licenses, p.Engine, p.Logger))
		r.Route("/api/dev/v1", func(r chi.Router) {
			r.Get("/licenses", controllers.DevListLicenses(p.Licenses, p.Logger))
			r.Post("/licenses", controllers.DevCreateLicense(p.Licenses, p.Logger))
			r.Post("/legalcodes", controllers.DevIngestLegalCode(p.Licenses, p.Logger))
		})
	}

	return r
}

// registerToolPages mounts the legalcode and deed routes for one
// category, with and without a jurisdiction segment and with an
// optional language suffix.
func registerToolPages(r chi.Router, prefix string, category enums.Category, p RouterParams) {
	legalCodeHandler := controllers.LegalCodePage(p.LegalCode, p.Engine, p.Logger, category)
	deedHandler := controllers.DeedPage(p.LegalCode, p.Engine, p.Logger, category)

	r.Route(prefix+"/{code}/{version}", func(r chi.Router) {
		r.Get("/legalcode", legalCodeHandler)
		r.Get("/legalcode.{lang}", legalCodeHandler)
		r.Get("/deed", deedHandler)
		r.Get("/deed.{lang}", deedHandler)

		r.Route("/{jurisdiction}", func(r chi.Router) {
			r.Get("/legalcode", legalCodeHandler)
			r.Get("/legalcode.{lang}", legalCodeHandler)
			r.Get("/deed", deedHandler)
			r.Get("/deed.{lang}", deedHandler)
		})
	})
}

func passthrough(next http.Handler) http.Handler { return next }

// redisPinger hides the typed-nil pitfall when no Redis is configured.
func redisPinger(client *redis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
