package api

import (
	"context"
	"net/http"
	"strings"
)

// StatsProvider reports service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]any
}

// StatsHandler serves /stats.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats. A comma separated keys parameter narrows
// the response to those entries; unknown keys are left out.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.statsProvider.GetStats(r.Context())
	raw := r.URL.Query().Get("keys")
	if raw == "" {
		writeJSON(w, http.StatusOK, stats)
		return
	}
	out := make(map[string]any)
	for _, k := range strings.Split(raw, ",") {
		if v, ok := stats[strings.TrimSpace(k)]; ok {
			out[strings.TrimSpace(k)] = v
		}
	}
	writeJSON(w, http.StatusOK, out)
}
