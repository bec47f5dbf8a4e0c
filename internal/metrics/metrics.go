package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons for preprocess_links_dropped_total.
const (
	DropUnresolved   = "unresolved"
	DropRuleFiltered = "rule_filtered"
)

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	preprocessTotal     prometheus.Counter
	preprocessDuration  prometheus.Histogram
	linksDropped        *prometheus.CounterVec
}

// New creates a fresh Metrics registry with HTTP and preprocessing metrics
// registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "linkmap",
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests processed by core-go",
	}, []string{"method", "path", "status"})

	httpRequestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "linkmap",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests served by core-go",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	preprocessTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "linkmap",
		Name:      "preprocess_passes_total",
		Help:      "Total number of load+preprocess passes completed",
	})

	preprocessDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "linkmap",
		Name:      "preprocess_pass_duration_seconds",
		Help:      "Duration of a full load+preprocess pass",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})

	linksDropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "linkmap",
		Name:      "preprocess_links_dropped_total",
		Help:      "Links dropped during preprocessing, by reason",
	}, []string{"reason"})

	registry.MustRegister(
		httpRequests,
		httpRequestDuration,
		preprocessTotal,
		preprocessDuration,
		linksDropped,
	)

	return &Metrics{
		registry:            registry,
		httpRequests:        httpRequests,
		httpRequestDuration: httpRequestDuration,
		preprocessTotal:     preprocessTotal,
		preprocessDuration:  preprocessDuration,
		linksDropped:        linksDropped,
	}
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

// ObservePreprocessPass records one completed load+preprocess pass.
func (m *Metrics) ObservePreprocessPass(duration time.Duration) {
	if m == nil {
		return
	}
	m.preprocessTotal.Inc()
	m.preprocessDuration.Observe(duration.Seconds())
}

// AddLinksDropped counts links dropped for the given reason.
func (m *Metrics) AddLinksDropped(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linksDropped.With(prometheus.Labels{"reason": reason}).Add(float64(n))
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
