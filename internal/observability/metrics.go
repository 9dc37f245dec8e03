package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// sync pipelines.
type Metrics struct {
	RunsTotal   *prometheus.CounterVec // labels: domain, outcome={success,error}
	RunDuration *prometheus.HistogramVec

	RecordsNormalized *prometheus.CounterVec
	RecordsDropped    *prometheus.CounterVec // identity field missing

	// Event collection metrics.
	EventsPruned *prometheus.CounterVec
	TodayEvents  *prometheus.GaugeVec

	// Alert metrics.
	NotificationsSent prometheus.Counter

	// Change feed metrics.
	ChangeFeedPublished prometheus.Counter
	ChangeFeedErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.RecordsNormalized,
		m.RecordsDropped,
		m.EventsPruned,
		m.TodayEvents,
		m.NotificationsSent,
		m.ChangeFeedPublished,
		m.ChangeFeedErrors,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "runs_total",
			Help:      "Scheduled pipeline invocations by domain and outcome.",
		}, []string{"domain", "outcome"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campus_sync",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-persist pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"domain"}),
		RecordsNormalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "records_normalized_total",
			Help:      "Canonical records produced by domain.",
		}, []string{"domain"}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "records_dropped_total",
			Help:      "Provider records dropped for a missing identity field.",
		}, []string{"domain"}),
		EventsPruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "events_pruned_total",
			Help:      "Stored events removed by the sync engine's expiration rule.",
		}, []string{"domain"}),
		TodayEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "campus_sync",
			Name:      "today_events",
			Help:      "Events starting today in the persisted collection, as of the last sync.",
		}, []string{"domain"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "notifications_sent_total",
			Help:      "Emergency alert push notifications dispatched.",
		}),
		ChangeFeedPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "changefeed_published_total",
			Help:      "Documents published to the optional Kafka change feed.",
		}),
		ChangeFeedErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus_sync",
			Name:      "changefeed_errors_total",
			Help:      "Failed change feed publishes (best effort, never fail a run).",
		}),
	}
}
