package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rharbaugh/calendarium/internal/config"
)

// NewRouter configures all HTTP routes.
//
//	GET  /health
//	GET  /api/v1/calendar/today
//	GET  /api/v1/calendar/date/{date}
//	GET  /api/v1/calendar/range?start=&end=
//	GET  /api/v1/calendar/year/{year}[?observed=true]
//	GET  /api/v1/calendar/year/{year}/anchors
//	GET  /api/v1/calendar/year/{year}/ics[?observed=true]
//	GET  /api/v1/feasts
//	GET  /api/v1/feasts/{id}
//	PUT  /api/v1/feasts           (X-API-Key, CSV body)
//	POST /api/v1/feasts           (X-API-Key, JSON feast)
func NewRouter(h *Handlers, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(log), RequestID, Logging(log), CORS)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/calendar", func(r chi.Router) {
			r.Get("/today", h.GetToday)
			r.Get("/date/{date}", h.GetDate)
			r.Get("/range", h.GetRange)
			r.Route("/year/{year}", func(r chi.Router) {
				r.Get("/", h.GetYear)
				r.Get("/anchors", h.GetAnchors)
				r.Get("/ics", h.GetICS)
			})
		})

		r.Route("/feasts", func(r chi.Router) {
			r.Get("/", h.ListFeasts)
			r.Get("/{id}", h.GetFeast)
			r.Group(func(r chi.Router) {
				r.Use(RequireAPIKey(cfg, log))
				r.Put("/", h.ReplaceFeasts)
				r.Post("/", h.CreateFeast)
			})
		})
	})

	return r
}
