package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/exportracker/quotation-backend/api/controllers"
	"github.com/exportracker/quotation-backend/api/middleware"
	"github.com/exportracker/quotation-backend/internal/companies"
	"github.com/exportracker/quotation-backend/internal/destinations"
	"github.com/exportracker/quotation-backend/internal/quotations"
	"github.com/exportracker/quotation-backend/pkg/config"
	"github.com/exportracker/quotation-backend/pkg/logger"
	"github.com/exportracker/quotation-backend/pkg/metrics"
	"github.com/exportracker/quotation-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	users middleware.UserResolver,
	companiesService companies.Service,
	destinationsService destinations.Service,
	quotationsService quotations.Service,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.API.CORSOrigins),
	)

	readiness := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	identity := middleware.IdentityOptions{
		JWT:            cfg.JWT,
		AllowDevHeader: cfg.App.IsDev() && cfg.Identity.AllowDevHeader,
	}
	writePolicy := middleware.RateLimitPolicy{
		Name:   "write",
		Limit:  cfg.API.WriteRateLimit,
		Window: cfg.API.WriteRateWindow,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(identity, users, logg))
		// Redis backs replay and throttling; without it both are skipped.
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, cfg.API.IdempotencyTTL, logg))
			r.Use(middleware.RateLimit(writePolicy, redisClient, logg))
		}

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", controllers.CompanyList(companiesService, logg))
			r.Post("/", controllers.CompanyCreate(companiesService, logg))
			r.Get("/resolve", controllers.CompanyResolve(companiesService, logg))
		})

		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", controllers.DestinationList(destinationsService, logg))
			r.Post("/", controllers.DestinationCreate(destinationsService, logg))
			r.Get("/resolve", controllers.DestinationResolve(destinationsService, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.QuotationList(quotationsService, logg))
			r.Post("/", controllers.QuotationCreate(quotationsService, logg))
			r.Post("/preview", controllers.QuotationPreview(quotationsService, logg))
			r.Get("/totals", controllers.QuotationTotals(quotationsService, logg))
			r.Get("/export", controllers.QuotationExport(quotationsService, logg, nil))
			r.Get("/{quotationId}", controllers.QuotationDetail(quotationsService, logg))
			r.Post("/{quotationId}/status", controllers.QuotationStatus(quotationsService, logg))
		})
	})

	return r
}
