package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	CORSOrigins []string
	// RateLimitPerMinute caps requests per client IP; zero disables the limit.
	RateLimitPerMinute int
}

// NewRouter builds and returns the Chi router with all routes configured.
// db and cache may be nil when the component is not configured.
func NewRouter(handlers *Handlers, cfg RouterConfig, db, cache Pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewSlogLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(NewCORSHandler(cfg.CORSOrigins))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(db, cache, log))

		r.Get("/flights", handlers.SearchFlights)
		r.Get("/hotels", handlers.SearchHotels)
		r.Post("/itinerary", handlers.PlanItinerary)

		r.Get("/history", handlers.ListHistory)
		r.Get("/history/{id}", handlers.GetHistory)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
