package generator

import (
	"context"
	"fmt"
	"sort"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
)

// dedupPrefixLen is the identity window for near-duplicate retrieval results:
// two passages sharing their first 100 characters count as one.
const dedupPrefixLen = 100

// Result is one retrieved passage.
type Result struct {
	Text     string
	Score    float32
	FileName string
	Meta     map[string]any
}

// retrieve runs every query against the vector store, merges the results,
// deduplicates them, and sorts descending by score.
func (e *Engine) retrieve(ctx context.Context, queries []string, topK int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var merged []Result
	for _, q := range queries {
		vecs, err := e.embedder.EmbedTexts(ctx, []string{q})
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
		hits, err := e.store.Search(ctx, e.collection, vecs[0], topK, nil)
		if err != nil {
			return nil, fmt.Errorf("search: %w", err)
		}
		for _, h := range hits {
			text, _ := h.Meta["text"].(string)
			if text == "" {
				continue
			}
			fileName, _ := h.Meta["file_name"].(string)
			merged = append(merged, Result{Text: text, Score: h.Score, FileName: fileName, Meta: h.Meta})
		}
	}

	results := Dedup(merged)
	logger.DebugContext(ctx, "retrieval complete", "queries", len(queries), "merged", len(merged), "deduped", len(results))
	return results, nil
}

// Dedup removes duplicate passages: exact text matches first, then passages
// sharing a 100-character prefix, keeping the highest-scoring copy. The
// survivors come back sorted descending by score.
func Dedup(results []Result) []Result {
	byText := make(map[string]Result)
	var textOrder []string
	for _, r := range results {
		if existing, ok := byText[r.Text]; !ok {
			byText[r.Text] = r
			textOrder = append(textOrder, r.Text)
		} else if r.Score > existing.Score {
			byText[r.Text] = r
		}
	}

	byPrefix := make(map[string]Result)
	var prefixOrder []string
	for _, text := range textOrder {
		r := byText[text]
		prefix := r.Text
		// Cut on rune boundaries so a multibyte character at the window edge
		// cannot split into a mangled key.
		if runes := []rune(prefix); len(runes) > dedupPrefixLen {
			prefix = string(runes[:dedupPrefixLen])
		}
		if existing, ok := byPrefix[prefix]; !ok {
			byPrefix[prefix] = r
			prefixOrder = append(prefixOrder, prefix)
		} else if r.Score > existing.Score {
			byPrefix[prefix] = r
		}
	}

	out := make([]Result, 0, len(prefixOrder))
	for _, prefix := range prefixOrder {
		out = append(out, byPrefix[prefix])
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}
