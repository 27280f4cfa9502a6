// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fbsts",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served.",
	}, []string{"route", "status"})

	// HTTPDuration observes request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fbsts",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// CacheHits and CacheMisses track the advisory Redis cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fbsts",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Read-through cache hits.",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fbsts",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Read-through cache misses.",
	})

	// FilterFallbacks counts aggregation queries that re-ran with the
	// competition filter dropped after a zero-row strict result.
	FilterFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fbsts",
		Subsystem: "query",
		Name:      "competition_fallbacks_total",
		Help:      "Aggregations retried without the competition filter.",
	})
)
