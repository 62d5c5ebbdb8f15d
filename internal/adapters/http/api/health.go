// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/scoreline/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(stats StatsProvider) *HealthHandler {
	return &HealthHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status   string         `json:"status"`
	Datasets map[string]any `json:"datasets,omitempty"`
}

// HandleHealth handles GET /healthz. It answers 503 until the datasets are
// loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.stats.GetStats()
	if started, _ := stats["started"].(bool); !started {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	datasets := make(map[string]any)
	for _, k := range []string{"teams", "matches", "ratings", "standingsLoaded", "teamMatchesLoaded"} {
		if v, ok := stats[k]; ok {
			datasets[k] = v
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Datasets: datasets})
}

// HandleMetrics serves the Prometheus exposition of the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
