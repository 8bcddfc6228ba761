package observability

import (
	"time"

	"github.com/Jamesrrobbins/market-news/pkg/upstream"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters and histograms for upstream API traffic.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: provider, outcome
	UpstreamDuration *prometheus.HistogramVec // labels: provider
	Summaries        *prometheus.CounterVec   // labels: outcome={generated,empty,unavailable}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.Summaries)
	return m
}

// NewMetricsForTesting creates metrics on a private registry so tests can run in parallel.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.Summaries)
	return m
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_news",
			Name:      "upstream_requests_total",
			Help:      "Calls to third-party APIs by provider and outcome.",
		}, []string{"provider", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "market_news",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of third-party API calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "market_news",
			Name:      "summaries_total",
			Help:      "Summary requests by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveUpstream records one upstream call. The outcome label is "success" or the error kind.
func (m *Metrics) ObserveUpstream(provider string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = string(upstream.KindOf(err))
	}

	m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSummary(outcome string) {
	if m == nil {
		return
	}
	m.Summaries.WithLabelValues(outcome).Inc()
}
