package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/AdeenoAi/fdabc/internal/chunker"
	"github.com/AdeenoAi/fdabc/internal/config"
	"github.com/AdeenoAi/fdabc/internal/generator"
	"github.com/AdeenoAi/fdabc/internal/http"
	"github.com/AdeenoAi/fdabc/internal/indexer"
	"github.com/AdeenoAi/fdabc/internal/llm"
	"github.com/AdeenoAi/fdabc/internal/service"
	"github.com/AdeenoAi/fdabc/internal/storage"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
	"github.com/AdeenoAi/fdabc/internal/verifier"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	reportRepo := storage.NewReportRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize, cfg.EmbedTimeout)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create the ingestion pipeline
	chk := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap, cfg.MaxChunkSize, chunker.HeuristicEstimator{})
	pipeline := indexer.New(
		documentRepo,
		chunkRepo,
		vectorStore,
		embedder,
		chk,
		cfg.QdrantCollection,
	)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.CompletionTimeout)

	// Create generation and verification engines
	engine := generator.New(vectorStore, embedder, llmClient, cfg.QdrantCollection, cfg.TopK)
	checker := verifier.New(
		vectorStore,
		embedder,
		llmClient,
		cfg.QdrantCollection,
		verifier.Weights{High: cfg.VerifyWeightHigh, Medium: cfg.VerifyWeightMedium, Low: cfg.VerifyWeightLow},
		cfg.VerifyThreshold,
		cfg.VerifyConcurrency,
	)
	documents := service.NewDocumentService(engine, checker, reportRepo)
	slog.Info("Generation engine initialized", "top_k", cfg.TopK)

	// Load the configured template up front so generation works immediately
	if cfg.TemplatePath != "" {
		if info, err := documents.LoadTemplate(ctx, cfg.TemplatePath); err != nil {
			slog.Warn("Failed to load template at startup", "path", cfg.TemplatePath, "error", err)
		} else {
			slog.Info("Template loaded", "path", cfg.TemplatePath, "sections", len(info.Sections))
		}
	}

	// Create router with dependencies
	deps := &http.Deps{
		Documents:  documents,
		Pipeline:   pipeline,
		Store:      vectorStore,
		Collection: cfg.QdrantCollection,
		CorpusDir:  cfg.CorpusDir,
	}
	router := http.NewRouter(deps)

	// Start ingestion in background after router is ready
	if cfg.CorpusDir != "" {
		go func() {
			ingestCtx := context.Background()
			slog.Info("Starting background ingestion", "dir", cfg.CorpusDir)
			summary, err := pipeline.IngestDir(ingestCtx, cfg.CorpusDir)
			if err != nil {
				slog.Error("Ingestion failed", "error", err)
				return
			}
			slog.Info("Ingestion finished",
				"files", summary.Files, "indexed", summary.Indexed,
				"skipped", summary.Skipped, "failed", summary.Failed)
		}()
	}

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
