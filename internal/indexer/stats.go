package indexer

import (
	"context"
	"fmt"
)

// Stats summarises what has been ingested.
type Stats struct {
	Documents    int            `json:"documents"`
	ChunksByType map[string]int `json:"chunks_by_type"`
	PointsCount  int            `json:"points_count"`
	VectorSize   int            `json:"vector_size"`
	Status       string         `json:"status"`
}

// Stats reports document and chunk counts alongside the collection's state.
func (p *Pipeline) Stats(ctx context.Context) (*Stats, error) {
	docs, err := p.documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	counts, err := p.chunks.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	info, err := p.store.GetCollectionInfo(ctx, p.collection)
	if err != nil {
		return nil, fmt.Errorf("collection info: %w", err)
	}

	return &Stats{
		Documents:    len(docs),
		ChunksByType: counts,
		PointsCount:  info.PointsCount,
		VectorSize:   info.VectorSize,
		Status:       info.Status,
	}, nil
}
