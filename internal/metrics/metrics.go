// Package metrics exposes Prometheus collectors for HTTP traffic and the
// analytics pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method", "status"},
	)

	analyticsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journal_analytics_compute_duration_seconds",
			Help:    "Time spent computing analytics, excluding record fetch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	analyticsRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_analytics_records",
			Help:    "Number of records in the snapshot handed to the engine",
			Buckets: []float64{0, 10, 30, 90, 180, 365, 730, 1500},
		},
	)

	analyticsCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_analytics_cache_requests_total",
			Help: "Analytics result cache lookups by outcome",
		},
		[]string{"result"},
	)

	regOnce sync.Once
)

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, analyticsDuration, analyticsRecords, analyticsCache)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Recorder receives analytics pipeline measurements.
type Recorder interface {
	ObserveCompute(operation string, d time.Duration, records int)
	CacheLookup(result string)
}

// Prometheus records into the package collectors.
type Prometheus struct{}

func NewPrometheus() Prometheus {
	Register()
	return Prometheus{}
}

func (Prometheus) ObserveCompute(operation string, d time.Duration, records int) {
	analyticsDuration.WithLabelValues(operation).Observe(d.Seconds())
	analyticsRecords.Observe(float64(records))
}

func (Prometheus) CacheLookup(result string) {
	analyticsCache.WithLabelValues(result).Inc()
}

// Nop discards measurements.
type Nop struct{}

func (Nop) ObserveCompute(string, time.Duration, int) {}
func (Nop) CacheLookup(string)                        {}

// ObserveHTTP records one finished request. route should be a templated path.
func ObserveHTTP(route, method string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(route, method, code).Inc()
	httpRequestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}
