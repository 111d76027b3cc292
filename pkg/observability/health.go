package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ProbeFunc checks a single dependency and returns an error when unhealthy.
type ProbeFunc func(ctx context.Context) error

// HealthChecker provides liveness and readiness probes. Dependencies are
// registered as named probe functions so the checker stays decoupled from
// the collaborators it watches.
type HealthChecker struct {
	version string
	probes  map[string]ProbeFunc
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		version: version,
		probes:  make(map[string]ProbeFunc),
	}
}

// RegisterProbe adds a named dependency probe
func (h *HealthChecker) RegisterProbe(name string, probe ProbeFunc) {
	h.probes[name] = probe
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (200 whenever the process serves)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now().UTC(),
	})
}

// Readiness runs every registered probe and returns 503 when any fails
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now().UTC(),
		Version:      h.version,
		Dependencies: make(map[string]DependencyStatus, len(h.probes)),
	}

	for name, probe := range h.probes {
		if err := probe(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Dependencies[name] = DependencyStatus{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		status.Dependencies[name] = DependencyStatus{Status: StatusHealthy}
	}

	w.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}
