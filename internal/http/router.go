// Package http wires the API routes and shared middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AdeenoAi/fdabc/internal/handlers"
	"github.com/AdeenoAi/fdabc/internal/indexer"
	"github.com/AdeenoAi/fdabc/internal/service"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Documents  service.DocumentService
	Pipeline   *indexer.Pipeline
	Store      vectorstore.VectorStore
	Collection string
	CorpusDir  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	ingestHandler := handlers.NewIngestHandler(deps.Pipeline, deps.CorpusDir)
	generateHandler := handlers.NewGenerateHandler(deps.Documents)
	templateHandler := handlers.NewTemplateHandler(deps.Documents)
	sectionsHandler := handlers.NewSectionsHandler(deps.Documents)
	statsHandler := handlers.NewStatsHandler(deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ingest", ingestHandler)
		r.Method(http.MethodPost, "/generate", generateHandler)
		r.Method(http.MethodPost, "/template", templateHandler)
		r.Method(http.MethodGet, "/template/sections", sectionsHandler)
		r.Method(http.MethodGet, "/stats", statsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
