// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package metrics provides Prometheus instrumentation for Roadwatch.
//
// Exposed at /metrics in Prometheus text format. Collectors cover the HTTP
// surface, upstream feed fetches, the raw-feed cache, and the per-provider
// circuit breakers.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Upstream feed metrics
	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of upstream feed fetches in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "region"},
	)

	UpstreamFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetches_total",
			Help: "Total number of upstream feed fetches",
		},
		[]string{"provider", "region", "outcome"}, // "success", "http_error", "transport_error", "rejected"
	)

	CamerasNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cameras_normalized_total",
			Help: "Total number of raw records normalized into canonical cameras",
		},
		[]string{"provider"},
	)

	CamerasDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cameras_dropped_total",
			Help: "Total number of raw records dropped during normalization",
		},
		[]string{"provider", "reason"}, // "bad_coordinates"
	)

	// Raw-feed cache metrics
	FeedCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_hits_total",
			Help: "Total number of raw-feed cache hits",
		},
		[]string{"cache"},
	)

	FeedCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_misses_total",
			Help: "Total number of raw-feed cache misses",
		},
		[]string{"cache"},
	)

	FeedCacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_evictions_total",
			Help: "Total number of raw-feed cache entries evicted",
		},
		[]string{"cache"},
	)

	FeedCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_cache_entries",
			Help: "Current number of raw-feed cache entries",
		},
		[]string{"cache"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breakers",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// Streaming metrics
	StreamMessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_messages_sent_total",
			Help: "Total number of streaming messages written",
		},
		[]string{"transport", "type"}, // transport: "ndjson", "websocket"
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamFetch records one upstream feed fetch attempt.
func RecordUpstreamFetch(provider, region, outcome string, duration time.Duration) {
	UpstreamFetchesTotal.WithLabelValues(provider, region, outcome).Inc()
	UpstreamFetchDuration.WithLabelValues(provider, region).Observe(duration.Seconds())
}
