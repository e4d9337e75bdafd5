package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ application.ResolveObserver = (*Metrics)(nil)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SourceAttemptsTotal   *prometheus.CounterVec
	SourceAttemptDuration *prometheus.HistogramVec
	ResolutionsTotal      *prometheus.CounterVec
	QuoteRequestsTotal    prometheus.Counter
	ProbeDegradedTotal    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers all collectors on reg. A nil reg uses a fresh registry,
// so tests and several instances in one process never collide.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		SourceAttemptsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_source_attempts_total",
				Help: "Live rate source attempts by outcome",
			},
			[]string{"source", "outcome"},
		),

		SourceAttemptDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_source_attempt_duration_seconds",
				Help:    "Time spent on one live rate source attempt",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"source"},
		),

		ResolutionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "market_rate_resolutions_total",
				Help: "Resolved market rates by final source (fallback included)",
			},
			[]string{"source"},
		),

		QuoteRequestsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "quote_requests_total",
				Help: "Total number of comparison requests",
			},
		),

		ProbeDegradedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_probe_degraded_total",
				Help: "Probe ticks whose pair resolved to the fallback table",
			},
			[]string{"pair"},
		),

		gatherer: reg,
	}
}

func (m *Metrics) SourceAttempt(source string, err error, took time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.SourceAttemptsTotal.WithLabelValues(source, outcome).Inc()
	m.SourceAttemptDuration.WithLabelValues(source).Observe(took.Seconds())
}

func (m *Metrics) Resolved(source domain.RateSource) {
	m.ResolutionsTotal.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) ObserveHTTP(path, method string, status int, took time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(took.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
