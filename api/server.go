/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends

ROUTE GROUPS:
  /api/holidays/*   Holiday table queries
  /api/dates/*      Single-date lookups
  /api/rules        Rule catalog audit dump
  /api/snapshots/*  Persisted table snapshots

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Get("/year/{year}", h.ListHolidaysByYear)
		})

		r.Get("/dates/{date}", h.CheckDate)
		r.Get("/rules", h.ListRules)

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", h.ListSnapshots)
			r.Post("/", h.CreateSnapshot)
			r.Get("/{id}", h.GetSnapshot)
		})
	})

	return r
}
