// Package indexer runs the ingestion pipeline: decode, chunk, embed, upsert
// into the vector store, with a SQLite mirror of every chunk.
package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AdeenoAi/fdabc/internal/chunker"
	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/corpus"
	"github.com/AdeenoAi/fdabc/internal/decode"
	"github.com/AdeenoAi/fdabc/internal/storage"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
)

// embedBatchSize bounds how many chunk texts go to the embeddings API per call.
const embedBatchSize = 16

// Embedder generates embeddings for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline indexes source documents into the vector store.
type Pipeline struct {
	documents  storage.DocumentStore
	chunks     storage.ChunkStore
	store      vectorstore.VectorStore
	embedder   Embedder
	chunker    *chunker.Chunker
	collection string
}

// New creates an ingestion pipeline.
func New(documents storage.DocumentStore, chunks storage.ChunkStore, store vectorstore.VectorStore, embedder Embedder, ch *chunker.Chunker, collection string) *Pipeline {
	return &Pipeline{
		documents:  documents,
		chunks:     chunks,
		store:      store,
		embedder:   embedder,
		chunker:    ch,
		collection: collection,
	}
}

// FileResult describes the outcome of indexing one file.
type FileResult struct {
	FileName string `json:"file_name"`
	Decoder  string `json:"decoder,omitempty"`
	Chunks   int    `json:"chunks"`
	Skipped  bool   `json:"skipped"`
}

// IndexFile ingests one file. Unchanged files (same content hash) are
// skipped; changed files have their old points deleted before the new chunks
// are upserted, so the vector store never holds two generations of one file.
func (p *Pipeline) IndexFile(ctx context.Context, path string) (*FileResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	doc, err := decode.File(path)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	sum := sha256.Sum256([]byte(doc.Text))
	hash := hex.EncodeToString(sum[:])

	existing, err := p.documents.GetByPath(ctx, path)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("lookup document: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		logger.InfoContext(ctx, "file unchanged, skipping", "file", doc.Meta.FileName)
		return &FileResult{FileName: doc.Meta.FileName, Decoder: doc.Decoder, Skipped: true}, nil
	}

	documentID := uuid.NewString()
	if existing != nil {
		documentID = existing.ID
		pointIDs, err := p.chunks.ListPointIDsByDocument(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("list stale points: %w", err)
		}
		if err := p.store.Delete(ctx, p.collection, pointIDs); err != nil {
			return nil, fmt.Errorf("delete stale points: %w", err)
		}
		if err := p.chunks.DeleteByDocument(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("delete stale chunks: %w", err)
		}
	}

	chunks := p.chunker.Document(doc)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks produced", "file", doc.Meta.FileName)
		return &FileResult{FileName: doc.Meta.FileName, Decoder: doc.Decoder}, nil
	}

	vectors, err := p.embedChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	// New point IDs continue from the collection's current count.
	info, err := p.store.GetCollectionInfo(ctx, p.collection)
	if err != nil {
		return nil, fmt.Errorf("collection info: %w", err)
	}
	nextID := uint64(info.PointsCount)

	points := make([]vectorstore.Point, 0, len(chunks))
	for i, c := range chunks {
		points = append(points, vectorstore.Point{
			ID:  nextID + uint64(i),
			Vec: vectors[i],
			Meta: map[string]any{
				"chunk_id":    c.ID,
				"chunk_uuid":  c.UUID,
				"chunk_type":  string(c.Type),
				"chunk_index": c.Index,
				"token_count": c.TokenCount,
				"file_name":   c.Meta.FileName,
				"file_path":   c.Meta.FilePath,
				"file_type":   c.Meta.FileType,
				"text":        c.Text,
			},
		})
	}
	if err := p.store.Upsert(ctx, p.collection, points); err != nil {
		return nil, fmt.Errorf("upsert: %w", err)
	}

	if err := p.documents.Upsert(ctx, &storage.Document{
		ID:       documentID,
		FileName: doc.Meta.FileName,
		FilePath: path,
		FileType: doc.Meta.FileType,
		Hash:     hash,
		Decoder:  doc.Decoder,
	}); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	for i, c := range chunks {
		record := &storage.ChunkRecord{
			ID:         c.ID,
			DocumentID: documentID,
			PointID:    points[i].ID,
			ChunkIndex: c.Index,
			ChunkType:  string(c.Type),
			TokenCount: c.TokenCount,
			Text:       c.Text,
		}
		if err := p.chunks.Insert(ctx, record); err != nil {
			return nil, fmt.Errorf("store chunk: %w", err)
		}
	}

	logger.InfoContext(ctx, "indexed file",
		"file", doc.Meta.FileName, "decoder", doc.Decoder, "chunks", len(chunks))
	return &FileResult{FileName: doc.Meta.FileName, Decoder: doc.Decoder, Chunks: len(chunks)}, nil
}

func (p *Pipeline) embedChunks(ctx context.Context, chunks []chunker.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}
		batch, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// Summary aggregates an ingestion run over a directory.
type Summary struct {
	Files   int          `json:"files"`
	Indexed int          `json:"indexed"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Chunks  int          `json:"chunks"`
	Results []FileResult `json:"results"`
	Errors  []string     `json:"errors,omitempty"`
}

// IngestDir scans a directory and indexes every supported file. Per-file
// failures are collected, not fatal; the rest of the corpus still indexes.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*Summary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := corpus.Scan(dir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Files: len(files)}
	for _, f := range files {
		result, err := p.IndexFile(ctx, f.Path)
		if err != nil {
			logger.ErrorContext(ctx, "failed to index file", "file", f.Name, "error", err)
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		summary.Results = append(summary.Results, *result)
		if result.Skipped {
			summary.Skipped++
		} else {
			summary.Indexed++
			summary.Chunks += result.Chunks
		}
	}

	logger.InfoContext(ctx, "ingestion complete",
		"files", summary.Files, "indexed", summary.Indexed,
		"skipped", summary.Skipped, "failed", summary.Failed, "chunks", summary.Chunks)
	return summary, nil
}
