// Prometheus collectors for the admixture service.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "admixmap"

var DefaultDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}

type Metrics struct {
	registry *prometheus.Registry

	ProcessTotal    *prometheus.CounterVec
	ProcessDuration *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	GeographyCache  *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		ProcessTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "process_total",
			Help:      "Admixture submissions by model and outcome.",
		}, []string{"model", "outcome"}),
		ProcessDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "process_duration_seconds",
			Help:      "Time spent processing one submission.",
			Buckets:   DefaultDurationBuckets,
		}, []string{"outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		GeographyCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geography_cache_total",
			Help:      "Geography template lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.ProcessTotal, m.ProcessDuration, m.HTTPRequests, m.GeographyCache)
	return m
}

// ObserveProcess records one pipeline run. outcome is "ok" or an error kind.
func (m *Metrics) ObserveProcess(model, outcome string, elapsed time.Duration) {
	if model == "" {
		model = "unknown"
	}
	m.ProcessTotal.WithLabelValues(model, outcome).Inc()
	m.ProcessDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, path string, status int) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveGeographyCache satisfies model.CacheObserver.
func (m *Metrics) ObserveGeographyCache(result string) {
	m.GeographyCache.WithLabelValues(result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
