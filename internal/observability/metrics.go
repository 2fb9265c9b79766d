// Package observability provides logging and metrics instrumentation.
package observability

import (
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchQueries counts full-text search requests by scope.
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_search_queries_total",
		Help: "Total number of full-text search queries by scope",
	}, []string{"scope"})

	// SearchLatency records full-text search latency by scope.
	SearchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agora_search_latency_seconds",
		Help:    "Full-text search latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"scope"})

	// IndexMutations counts write-path mutations applied to the search index.
	IndexMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_index_mutations_total",
		Help: "Total number of search index mutations by operation",
	}, []string{"operation"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// TrendingComputeLatency records how long the trending aggregate takes.
	TrendingComputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "agora_trending_compute_latency_seconds",
		Help:    "Latency of the trending score aggregation in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

var (
	promOnce sync.Once
	promMw   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for HTTP-level metrics. The
// middleware registers collectors in the default registry, so it is created
// once per process no matter how many servers are constructed (tests build
// several).
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMw = fiberprometheus.New(serviceName)
	})
	return promMw
}

// ObserveSearch records one search query and its latency.
func ObserveSearch(scope string, start time.Time) {
	SearchQueries.WithLabelValues(scope).Inc()
	SearchLatency.WithLabelValues(scope).Observe(time.Since(start).Seconds())
}
