// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/agora/internal/config"
	"github.com/tomtom215/agora/internal/middleware"
)

// NewRouter assembles the chi router: global request-id/real-ip/recovery,
// per-IP rate limiting and Prometheus instrumentation on the API group, and
// viewer extraction on the feed routes.
func NewRouter(handler *Handler, cfg config.ServerConfig, jwtSecret string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Health probes stay outside rate limiting so orchestrators are never
	// throttled into a false failure.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	rateLimit := cfg.RateLimitReqs
	if rateLimit <= 0 {
		rateLimit = 100
	}
	rateWindow := cfg.RateLimitWindow
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rateLimit, rateWindow))
		r.Use(middleware.Prometheus)

		r.Route("/feeds", func(r chi.Router) {
			r.Use(ViewerExtractor(jwtSecret))

			r.Get("/home", handler.HomeFeed)
			r.Get("/following", handler.FollowingFeed)
			r.Get("/trending", handler.TrendingFeed)
			r.Get("/communities/{communityID}", handler.CommunityFeed)
		})

		r.Get("/cache/stats", handler.CacheStats)
	})

	return r
}

// NewServer wraps the router in an http.Server with the configured timeouts.
func NewServer(router http.Handler, cfg config.ServerConfig, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Timeout,
		WriteTimeout:      cfg.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * cfg.Timeout,
	}
}
