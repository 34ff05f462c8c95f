package handler

import (
	"fmt"
	"net/http"

	"github.com/pokevault/pokevault/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "pokevault_registrations_total{status=\"success\"} %d\n", snap.RegistrationsSuccess)
	writeMetric(w, "pokevault_registrations_total{status=\"conflict\"} %d\n", snap.RegistrationsConflict)

	writeMetric(w, "pokevault_logins_total{status=\"success\"} %d\n", snap.LoginsSuccess)
	writeMetric(w, "pokevault_logins_total{status=\"failure\"} %d\n", snap.LoginsFailure)
	writeMetric(w, "pokevault_auth_rejected_total %d\n", snap.AuthRejected)

	writeMetric(w, "pokevault_pokemon_created_total %d\n", snap.PokemonCreated)
	writeMetric(w, "pokevault_pokemon_updated_total %d\n", snap.PokemonUpdated)
	writeMetric(w, "pokevault_pokemon_deleted_total %d\n", snap.PokemonDeleted)

	writeMetric(w, "pokevault_upstream_requests_total %d\n", snap.UpstreamCalls)
	writeMetric(w, "pokevault_upstream_failures_total %d\n", snap.UpstreamFailures)
	writeMetric(w, "pokevault_upstream_duration_seconds_count %d\n", snap.UpstreamCalls)
	writeMetric(w, "pokevault_upstream_duration_seconds_sum %.6f\n", float64(snap.UpstreamDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
