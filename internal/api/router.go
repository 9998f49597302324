package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipmirror/tokrelay/internal/api/handler"
	mw "github.com/clipmirror/tokrelay/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	mediaHandler *handler.MediaHandler,
	healthHandler *handler.HealthHandler,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //health -> /health)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS policy on every response; preflight is answered here before
	// any route or query parsing runs.
	r.Use(mw.CORS)

	// Health endpoints
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	// The gateway itself. Registered for all methods so a missing url
	// parameter yields 400 regardless of method.
	r.HandleFunc("/", mediaHandler.Relay)

	return r
}
