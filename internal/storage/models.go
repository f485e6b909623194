package storage

import "time"

// Document represents an ingested source file.
type Document struct {
	ID        string // UUID
	FileName  string
	FilePath  string
	FileType  string
	Hash      string // SHA256 hex string of decoded content
	Decoder   string // decode strategy that succeeded
	CreatedAt time.Time
}

// ChunkRecord mirrors one chunk that was upserted into the vector store.
type ChunkRecord struct {
	ID         string // <file name>_chunk_<index>
	DocumentID string // foreign key to documents.id
	PointID    uint64 // numeric vector store point ID
	ChunkIndex int
	ChunkType  string
	TokenCount int
	Text       string
}

// Report is a persisted verification payload for one generated section.
type Report struct {
	ID          string // UUID
	SectionName string
	Confidence  float64
	Verified    bool
	Payload     string // VerificationResult as JSON
	CreatedAt   time.Time
}
