// Package observability provides structured logging, Prometheus metrics,
// health probes and graceful shutdown for the authorization gate.
//
// # Overview
//
// Logging is structured JSON over stdlib log/slog with field chaining:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("organization_id", orgID).Info("context resolved")
//
// Metrics cover the gate's decision surface: per-outcome decision counters,
// identity-provider validation latency, and context-endpoint fetches.
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.GateDecisionsTotal.WithLabelValues("rejected", "AUTH_REQUIRED").Inc()
//
// # Related Packages
//
//   - pkg/gateway: records decision metrics per request
//   - pkg/server: mounts /metrics and health probes on the health port
package observability
