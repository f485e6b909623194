package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/indexer"
)

// IngestHandler handles HTTP requests for corpus ingestion.
type IngestHandler struct {
	pipeline *indexer.Pipeline
	// corpusDir is the default when the request names no directory.
	corpusDir string
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline *indexer.Pipeline, corpusDir string) *IngestHandler {
	return &IngestHandler{pipeline: pipeline, corpusDir: corpusDir}
}

// IngestRequest represents the HTTP request payload for ingestion.
type IngestRequest struct {
	Dir string `json:"dir"`
}

// ServeHTTP handles HTTP requests for ingestion.
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req IngestRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	dir := req.Dir
	if dir == "" {
		dir = h.corpusDir
	}
	if dir == "" {
		writeError(w, http.StatusBadRequest, "Directory is required")
		return
	}

	summary, err := h.pipeline.IngestDir(ctx, dir)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "dir", dir, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to ingest directory")
		return
	}

	writeJSON(ctx, w, summary)
}
