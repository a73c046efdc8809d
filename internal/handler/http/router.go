package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kolanot/catalog-service/pkg/health"
	"github.com/Kolanot/catalog-service/pkg/middleware"
)

// RouterConfig carries the dependencies the HTTP router wires together.
type RouterConfig struct {
	CatalogueHandler *CatalogueHandler
	LineHandler      *LineHandler
	Health           *health.Handler
	Logger           *slog.Logger
	ServiceName      string
	CORS             middleware.CORSConfig
}

// NewRouter builds the chi router with the full middleware chain and all
// catalogue routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/healthz", cfg.Health.LivenessHandler())
	r.Get("/readyz", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/parties/{partyId}", func(r chi.Router) {
			r.Get("/catalogues", cfg.CatalogueHandler.ListPartyCatalogues)
			r.Head("/catalogues/{catalogueId}", cfg.CatalogueHandler.CatalogueExists)
			r.Get("/catalogues/{catalogueId}/lines", cfg.CatalogueHandler.GetCatalogueLines)
		})

		r.Route("/catalogues", func(r chi.Router) {
			r.Post("/", cfg.CatalogueHandler.CreateCatalogue)

			r.Route("/{catalogueUuid}", func(r chi.Router) {
				r.Get("/", cfg.CatalogueHandler.GetCatalogue)

				r.Route("/lines", func(r chi.Router) {
					r.Post("/", cfg.LineHandler.CreateLine)
					r.Get("/{lineId}", cfg.LineHandler.GetLine)
					r.Put("/{lineId}", cfg.LineHandler.UpdateLine)
					r.Delete("/{lineId}", cfg.LineHandler.DeleteLine)
				})
			})
		})
	})

	return r
}
