package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.GateDecisionsTotal.WithLabelValues("rejected", "AUTH_REQUIRED").Inc()
	m.GuardRejectionsTotal.WithLabelValues("require_organization", "MISSING_ORGANIZATION").Inc()
	m.AlertsComposedTotal.WithLabelValues("critical").Add(2)

	if got := testutil.ToFloat64(m.GateDecisionsTotal.WithLabelValues("rejected", "AUTH_REQUIRED")); got != 1 {
		t.Errorf("gate decisions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AlertsComposedTotal.WithLabelValues("critical")); got != 2 {
		t.Errorf("alerts composed = %v, want 2", got)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered metric families")
	}
}

func TestNopMetricsUsable(t *testing.T) {
	m := NewNopMetrics()
	m.AuditEventsDropped.Inc()
	m.ProviderValidationDuration.WithLabelValues("ok").Observe(0.01)
}

func TestHealthCheckerReadiness(t *testing.T) {
	hc := NewHealthChecker("1.2.3")
	hc.RegisterProbe("identity_provider", func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	hc.Readiness(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != 200 {
		t.Errorf("healthy readiness = %d, want 200", rec.Code)
	}

	hc.RegisterProbe("billing", func(ctx context.Context) error { return errors.New("unreachable") })
	rec = httptest.NewRecorder()
	hc.Readiness(rec, httptest.NewRequest("GET", "/ready", nil))
	if rec.Code != 503 {
		t.Errorf("unhealthy readiness = %d, want 503", rec.Code)
	}
}

func TestHealthCheckerLiveness(t *testing.T) {
	hc := NewHealthChecker("1.2.3")
	rec := httptest.NewRecorder()
	hc.Liveness(rec, httptest.NewRequest("GET", "/live", nil))
	if rec.Code != 200 {
		t.Errorf("liveness = %d, want 200", rec.Code)
	}
}
