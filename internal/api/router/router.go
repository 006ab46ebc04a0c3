// Package router wires the HTTP surface: middleware stack, API routes
// and the metrics endpoint.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"appointment-reminder/internal/appointment"
	"appointment-reminder/internal/extract"
	httpmiddleware "appointment-reminder/internal/http/middleware"
	"appointment-reminder/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	AppointmentHandler *appointment.Handler
	ParseHandler       *extract.Handler
	HealthHandler      *HealthHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", cfg.HealthHandler.Check)
		api.Post("/parse-message", cfg.ParseHandler.ParseMessage)
		api.Route("/appointments", func(appts chi.Router) {
			appts.Post("/schedule", cfg.AppointmentHandler.Schedule)
			appts.Get("/{id}", cfg.AppointmentHandler.Get)
			appts.Delete("/{id}", cfg.AppointmentHandler.Cancel)
		})
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
