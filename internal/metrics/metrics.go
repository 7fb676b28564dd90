// Agora - Activity Feed Ranking and Caching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agora

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for production observability:
// - Feed assembly latency and throughput per feed type
// - Cache efficiency (hits, misses, evictions, key count)
// - Invalidation activity from mutation events
// - Social-graph circuit breaker state

var (
	// Feed Assembly Metrics
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests",
		},
		[]string{"feed_type", "result"}, // result: "hit", "miss", "error"
	)

	FeedAssemblyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_assembly_duration_seconds",
			Help:    "Duration of cache-miss feed assembly in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"feed_type"},
	)

	FeedCandidatesFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_candidates_fetched",
			Help:    "Number of candidates fetched per assembly before ranking",
			Buckets: []float64{10, 25, 50, 100, 200, 300, 500},
		},
		[]string{"feed_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_hits_total",
			Help: "Total number of feed cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_misses_total",
			Help: "Total number of feed cache misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cache_evictions_total",
			Help: "Total number of feed cache evictions (expiry + invalidation)",
		},
	)

	CacheKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_cache_entries",
			Help: "Current number of feed cache entries",
		},
	)

	// Invalidation Metrics
	InvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_invalidations_total",
			Help: "Total number of cache invalidation operations",
		},
		[]string{"kind"}, // "feed", "followers", "community", "trending"
	)

	InvalidationKeysRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_invalidation_keys_removed_total",
			Help: "Total number of cache keys removed by invalidation",
		},
	)

	InvalidationEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_invalidation_events_total",
			Help: "Total number of mutation events consumed for invalidation",
		},
		[]string{"topic", "result"}, // result: "ok", "skipped", "error"
	)

	// Circuit Breaker Metrics (social-graph client)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)
