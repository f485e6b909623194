package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/service"
)

// GenerateHandler handles HTTP requests for document generation.
type GenerateHandler struct {
	documents service.DocumentService
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(documents service.DocumentService) *GenerateHandler {
	return &GenerateHandler{documents: documents}
}

// GenerateRequest represents the HTTP request payload for generation.
type GenerateRequest struct {
	Sections   []string `json:"sections"`
	TopK       int      `json:"top_k"`
	Style      string   `json:"style"`
	Verify     bool     `json:"verify"`
	OutputPath string   `json:"output_path"`
}

// ServeHTTP handles HTTP requests for generation.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.documents.Generate(ctx, service.GenerateRequest{
		Sections:   req.Sections,
		TopK:       req.TopK,
		Style:      req.Style,
		Verify:     req.Verify,
		OutputPath: req.OutputPath,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to generate document")
		return
	}

	writeJSON(ctx, w, resp)
}
