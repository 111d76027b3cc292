package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the authorization gate
type Metrics struct {
	// Gate decisions, labeled by outcome (allowed/rejected/error) and the
	// rejection code when present (AUTH_REQUIRED, MISSING_ORGANIZATION, ...)
	GateDecisionsTotal *prometheus.CounterVec

	// Identity provider validation latency
	ProviderValidationDuration *prometheus.HistogramVec
	ProviderValidationErrors   prometheus.Counter

	// Context endpoint
	ContextFetchesTotal *prometheus.CounterVec

	// Guard rejections at the accessor layer, labeled by guard and code
	GuardRejectionsTotal *prometheus.CounterVec

	// Alert composer
	AlertsComposedTotal *prometheus.CounterVec

	// Audit recorder
	AuditEventsTotal   *prometheus.CounterVec
	AuditEventsDropped prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		GateDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orggate_gate_decisions_total",
				Help: "Total number of edge gateway decisions",
			},
			[]string{"outcome", "code"},
		),
		ProviderValidationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orggate_provider_validation_duration_seconds",
				Help:    "Identity provider session validation latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		ProviderValidationErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orggate_provider_validation_errors_total",
				Help: "Total number of identity provider validation failures",
			},
		),
		ContextFetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orggate_context_fetches_total",
				Help: "Total number of organization context endpoint fetches",
			},
			[]string{"status"},
		),
		GuardRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orggate_guard_rejections_total",
				Help: "Total number of handler guard rejections",
			},
			[]string{"guard", "code"},
		),
		AlertsComposedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orggate_alerts_composed_total",
				Help: "Total number of billing alerts composed, by level",
			},
			[]string{"level"},
		),
		AuditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orggate_audit_events_total",
				Help: "Total number of audit events recorded",
			},
			[]string{"outcome"},
		),
		AuditEventsDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orggate_audit_events_dropped_total",
				Help: "Audit events dropped because the recorder queue was full",
			},
		),
	}

	registry.MustRegister(
		m.GateDecisionsTotal,
		m.ProviderValidationDuration,
		m.ProviderValidationErrors,
		m.ContextFetchesTotal,
		m.GuardRejectionsTotal,
		m.AlertsComposedTotal,
		m.AuditEventsTotal,
		m.AuditEventsDropped,
	)

	return m
}

// NewNopMetrics creates metrics backed by a throwaway registry, for tests
// and for callers that do not export metrics.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
