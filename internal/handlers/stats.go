package handlers

import (
	"net/http"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/indexer"
)

// StatsHandler handles HTTP requests for index statistics.
type StatsHandler struct {
	pipeline *indexer.Pipeline
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(pipeline *indexer.Pipeline) *StatsHandler {
	return &StatsHandler{pipeline: pipeline}
}

// ServeHTTP handles HTTP requests for index statistics.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.pipeline.Stats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to collect stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to collect stats")
		return
	}

	writeJSON(ctx, w, stats)
}
