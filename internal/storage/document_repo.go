package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks github.com/AdeenoAi/fdabc/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DocumentStore defines the interface for document metadata operations.
type DocumentStore interface {
	// GetByPath gets a document by its file path. Returns ErrNotFound if absent.
	GetByPath(ctx context.Context, path string) (*Document, error)
	// Upsert inserts a document or replaces the row with the same file path.
	Upsert(ctx context.Context, doc *Document) error
	// List returns all documents ordered by file name.
	List(ctx context.Context) ([]Document, error)
}

// DocumentRepo provides methods for document operations.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByPath gets a document by its file path.
func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*Document, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, file_name, file_path, file_type, hash, decoder, created_at FROM documents WHERE file_path = ?",
		path,
	)
	var doc Document
	err := row.Scan(&doc.ID, &doc.FileName, &doc.FilePath, &doc.FileType, &doc.Hash, &doc.Decoder, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// Upsert inserts a document or replaces the existing row for the same path.
// Re-ingesting a changed file keeps one row per path.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, file_name, file_path, file_type, hash, decoder) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_path) DO UPDATE SET hash = excluded.hash, decoder = excluded.decoder`,
		doc.ID, doc.FileName, doc.FilePath, doc.FileType, doc.Hash, doc.Decoder,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// List returns all documents ordered by file name.
func (r *DocumentRepo) List(ctx context.Context) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, file_name, file_path, file_type, hash, decoder, created_at FROM documents ORDER BY file_name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.FileName, &doc.FilePath, &doc.FileType, &doc.Hash, &doc.Decoder, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
