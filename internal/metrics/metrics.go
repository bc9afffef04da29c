// Package metrics exposes the platform's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "noizee",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noizee",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "noizee",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	graphqlRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noizee",
			Subsystem: "graphql",
			Name:      "requests_total",
			Help:      "Total number of GraphQL round-trips to the backend.",
		},
		[]string{"operation", "status"},
	)

	graphqlDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "noizee",
			Subsystem: "graphql",
			Name:      "request_duration_seconds",
			Help:      "Duration of GraphQL round-trips.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"operation"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noizee",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Entity cache lookups by outcome.",
		},
		[]string{"cache", "outcome"},
	)

	cacheEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noizee",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entity cache evictions by reason.",
		},
		[]string{"cache", "reason"},
	)

	uploadBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "noizee",
			Subsystem: "uploads",
			Name:      "bytes_total",
			Help:      "Total bytes shipped to the asset upload endpoint.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		graphqlRequests,
		graphqlDuration,
		cacheLookups,
		cacheEvictions,
		uploadBytes,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler with HTTP metrics collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordGraphQLRequest records one backend round-trip.
func RecordGraphQLRequest(operation, status string, duration time.Duration) {
	if operation == "" {
		operation = "unknown"
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	graphqlRequests.WithLabelValues(operation, status).Inc()
	graphqlDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(cache, outcome).Inc()
}

// RecordCacheEviction records a cache entry removed by capacity or TTL.
func RecordCacheEviction(cache, reason string) {
	cacheEvictions.WithLabelValues(cache, reason).Inc()
}

// RecordUploadBytes accounts bytes sent to the asset endpoint.
func RecordUploadBytes(n int64) {
	if n > 0 {
		uploadBytes.Add(float64(n))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses resource ids so metric labels stay low-cardinality.
func canonicalPath(raw string) string {
	if raw == "" || raw == "/" {
		return "/"
	}
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	switch parts[0] {
	case "products", "categories", "colors", "sizes", "collections", "posts", "orders", "customers", "carts":
		if len(parts) == 1 {
			return "/" + parts[0]
		}
		return "/" + parts[0] + "/:id"
	default:
		return "/" + parts[0]
	}
}
