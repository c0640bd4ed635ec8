package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache engine metrics, mirrored from a Store's own metrics snapshot by
	// the Collector. These are labeled by cache name so a process hosting
	// more than one Store still scrapes cleanly.
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheExpiredHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_expired_hits_total",
			Help: "Total number of reads that found a live-looking but expired key",
		},
		[]string{"cache"},
	)

	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of capacity-driven evictions",
		},
		[]string{"cache", "policy"},
	)

	CacheItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_items",
			Help: "Current number of resident entries, including unswept expired ones",
		},
		[]string{"cache"},
	)

	CacheCleanupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_cleanup_runs_total",
			Help: "Total number of cleanup passes (background and on-demand)",
		},
		[]string{"cache"},
	)

	CacheCleanupRemovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_cleanup_removed_total",
			Help: "Total number of expired entries removed by cleanup passes",
		},
		[]string{"cache"},
	)

	CacheHitRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_hit_rate",
			Help: "Most recently observed hit rate (hits over hits+misses+expired_hits)",
		},
		[]string{"cache"},
	)

	// Circuit breaker metrics, shared across every breaker instance in the
	// process (currently just the cache persistence breaker).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"component"},
	)

	CircuitBreakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_trips_total",
			Help: "Total number of circuit breaker trips",
		},
		[]string{"component"},
	)

	// HTTP surface metrics, for the thin administrative API in front of the
	// cache engine.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Metrics collection error tracking for the background Collector.
	MetricsCollectionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metrics_collection_errors_total",
			Help: "Total number of errors encountered while mirroring cache metrics",
		},
		[]string{"collector"},
	)

	// WebSocket metrics for the live metrics-stream endpoint.
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Number of active WebSocket connections",
		},
	)

	WebSocketMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent to clients",
		},
	)
)
