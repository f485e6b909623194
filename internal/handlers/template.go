package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/service"
)

// TemplateHandler handles HTTP requests for template loading.
type TemplateHandler struct {
	documents service.DocumentService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(documents service.DocumentService) *TemplateHandler {
	return &TemplateHandler{documents: documents}
}

// TemplateRequest represents the HTTP request payload for loading a template.
type TemplateRequest struct {
	Path string `json:"path"`
}

// ServeHTTP handles HTTP requests for loading a template.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.documents.LoadTemplate(ctx, req.Path)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load template")
		return
	}

	writeJSON(ctx, w, info)
}

// SectionsHandler handles HTTP requests for the loaded template's structure.
type SectionsHandler struct {
	documents service.DocumentService
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(documents service.DocumentService) *SectionsHandler {
	return &SectionsHandler{documents: documents}
}

// ServeHTTP handles HTTP requests for template structure.
func (h *SectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	info, err := h.documents.TemplateSections(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to describe template")
		return
	}

	writeJSON(ctx, w, info)
}
