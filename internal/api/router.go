package api

import (
	"net/http"

	"github.com/rivecs/rivecs.github.io/internal/api/handlers"
	"github.com/rivecs/rivecs.github.io/internal/api/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Logger)
	r.Use(middleware.Telemetry)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health & info
	r.Get("/health", h.Health)
	r.Get("/version", h.VersionInfo)

	r.Route("/api", func(r chi.Router) {
		// Analyze does its own method check so non-POST requests get a
		// JSON error with an Allow header instead of chi's plain 405.
		r.HandleFunc("/analyze", h.Analyze)
		r.Get("/repos/{username}", h.ListRepos)
	})

	return r
}
