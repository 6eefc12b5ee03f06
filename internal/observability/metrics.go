package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the Prometheus instruments used by the ingestion pipeline.
type Metrics struct {
	IngestOutcomes   *prometheus.CounterVec
	IngestDuration   prometheus.Histogram
	DebitedMinor     prometheus.Counter
	ResolverFallback *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		IngestOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_outcomes_total",
			Help:      "Session report ingestion outcomes by terminal status.",
		}, []string{"status"}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_ms",
			Help:      "Wall time spent ingesting one session report in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		DebitedMinor: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_debited_minor_total",
			Help:      "Total wallet debits posted by ingestion, in minor units.",
		}),
		ResolverFallback: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agent_resolver_results_total",
			Help:      "Agent resolution results (resolved or not_found).",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveIngest(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.IngestOutcomes.WithLabelValues(status).Inc()
	m.IngestDuration.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) AddDebit(minor int64) {
	if m == nil || minor <= 0 {
		return
	}
	m.DebitedMinor.Add(float64(minor))
}

func (m *Metrics) CountResolution(result string) {
	if m == nil {
		return
	}
	m.ResolverFallback.WithLabelValues(result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
