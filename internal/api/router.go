// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/middleware"
	"github.com/tomtom215/roadwatch/internal/provider"
	"github.com/tomtom215/roadwatch/internal/websocket"
)

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg *config.Config, registry *provider.Registry, hub *websocket.Hub) http.Handler {
	h := NewHandler(cfg, registry, hub)

	r := chi.NewRouter()

	// Global stack, applied to every route. CORS is global so OPTIONS
	// preflight works everywhere.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health endpoints stay outside the rate limit so orchestrator
	// probes never get throttled.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/cameras", func(r chi.Router) {
		r.Use(rateLimit(cfg.Security))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", h.ListCameras)
		r.Get("/stream", h.StreamCameras)
		r.Get("/ws", h.WebSocket)
		r.Get("/{id}", h.GetCamera)
	})

	return r
}

// rateLimit returns an IP-keyed limiter, or a no-op when disabled (tests,
// trusted internal deployments).
func rateLimit(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
