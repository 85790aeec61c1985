package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/amlich/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /metrics
//	GET    /api/v1/days/today
//	GET    /api/v1/days/{date}
//	GET    /api/v1/lunar/{year}/{month}/{day}?leap=true
//	GET    /api/v1/months/{year}/{month}
//	GET    /api/v1/years/{year}
//	GET    /api/v1/observances
//	POST   /api/v1/observances        (API key)
//	DELETE /api/v1/observances/{id}   (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(handlers.metrics),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)
	r.Method(http.MethodGet, "/metrics", handlers.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/days/today", handlers.GetToday)
		r.Get("/days/{date}", handlers.GetDay)
		r.Get("/lunar/{year}/{month}/{day}", handlers.GetLunarDay)
		r.Get("/months/{year}/{month}", handlers.GetMonth)
		r.Get("/years/{year}", handlers.GetYear)

		r.Route("/observances", func(r chi.Router) {
			r.Get("/", handlers.ListObservances)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(cfg, logger))
				r.Post("/", handlers.CreateObservance)
				r.Delete("/{id}", handlers.DeleteObservance)
			})
		})
	})

	return r
}
