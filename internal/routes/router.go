package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"echomap/fieldstore/internal/api"
	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/middleware"
	"echomap/fieldstore/internal/storage"
)

// RegisterRoutes builds the chi router over the injected dependencies.
// The metrics registry is created by the caller so /metrics can live on
// the outer mux beside this router.
func RegisterRoutes(deps *api.Dependencies, slot storage.Slot, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	handlers := api.NewHandlers(deps)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(slot, upSince))

	// public share view, token-gated
	r.Get("/share/{token}", handlers.ViewSharedHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Post("/", handlers.CreateRecordHandler())
			r.Get("/", handlers.ListRecordsHandler())
			r.Post("/import", handlers.ImportRecordsHandler())
			r.Get("/export", handlers.ExportRecordsHandler())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetRecordHandler())
				r.Patch("/", handlers.UpdateRecordHandler())
				r.Delete("/", handlers.DeleteRecordHandler())
				r.Post("/status", handlers.ToggleStatusHandler())
				r.Post("/share", handlers.ShareRecordHandler())
			})
		})

		r.Route("/sync", func(r chi.Router) {
			r.Post("/", handlers.RunSyncHandler())
			r.Get("/status", handlers.SyncStatusHandler())
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", handlers.GetStatsHandler())
			r.Get("/nearby", handlers.GetNearbyHandler())
		})

		r.Get("/dispatch/routes", handlers.DispatchRoutesHandler())

		r.Get("/prefs", handlers.GetPrefsHandler())
		r.Put("/prefs", handlers.PutPrefsHandler())
	})

	return r
}
