// Package chunker segments parsed documents into retrieval units. Tables stay
// whole (or split row-wise when oversized), key/value variables are batched
// into groups, and remaining text is split on page breaks, then markdown
// headers, then a recursive separator ladder with a one-unit overlap carry.
package chunker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AdeenoAi/fdabc/internal/decode"
	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// ChunkType tags what a chunk contains.
type ChunkType string

const (
	TypeTable         ChunkType = "table"
	TypeTableFragment ChunkType = "table-fragment"
	TypeVariableGroup ChunkType = "variable-group"
	TypeSectionText   ChunkType = "section-text"
)

// Chunk is one immutable retrieval unit. ID and UUID are deterministic for
// identical input so re-indexing a file produces comparable chunks.
type Chunk struct {
	ID         string // <file name>_chunk_<index>
	UUID       string // UUIDv5 of ID, stable across runs
	Text       string
	Type       ChunkType
	Index      int
	TokenCount int
	Meta       decode.SourceMeta
}

// chunkNamespace anchors the UUIDv5 derivation of chunk identities.
var chunkNamespace = uuid.MustParse("8f6f3b9a-6f6e-4c51-9f4b-2f3a1d0c7e5d")

// Chunker splits documents using an injected token estimator.
type Chunker struct {
	targetSize int
	overlap    int
	maxSize    int
	estimator  Estimator
}

// New builds a Chunker. targetSize caps ordinary chunks, maxSize is the
// atomicity limit for whole tables, overlap is the token budget for the
// one-unit carry between adjacent text chunks.
func New(targetSize, overlap, maxSize int, estimator Estimator) *Chunker {
	if estimator == nil {
		estimator = HeuristicEstimator{}
	}
	return &Chunker{
		targetSize: targetSize,
		overlap:    overlap,
		maxSize:    maxSize,
		estimator:  estimator,
	}
}

// Document chunks a parsed document: tables first, then variable groups, then
// the remaining text. Indices are assigned in emission order.
func (c *Chunker) Document(doc *decode.ParsedDocument) []Chunk {
	var chunks []Chunk

	add := func(text string, chunkType ChunkType) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		index := len(chunks)
		id := fmt.Sprintf("%s_chunk_%d", doc.Meta.FileName, index)
		chunks = append(chunks, Chunk{
			ID:         id,
			UUID:       uuid.NewSHA1(chunkNamespace, []byte(id)).String(),
			Text:       text,
			Type:       chunkType,
			Index:      index,
			TokenCount: c.estimator.Estimate(text),
		})
	}

	for _, table := range doc.Tables {
		c.chunkTable(table.Text, add)
	}
	c.chunkVariables(doc.Variables, add)
	for _, segment := range c.splitPlainText(remainingText(doc)) {
		add(segment, TypeSectionText)
	}

	for i := range chunks {
		chunks[i].Meta = doc.Meta
	}
	return chunks
}

// chunkTable emits a table whole when it fits under the atomicity limit,
// otherwise splits it between rows, never inside one. Each fragment repeats
// the header and separator so it stays a readable table on its own.
func (c *Chunker) chunkTable(text string, add func(string, ChunkType)) {
	if c.estimator.Estimate(text) <= c.maxSize {
		add(text, TypeTable)
		return
	}

	tables := mdtable.Detect(text)
	if len(tables) == 0 {
		add(text, TypeTable)
		return
	}
	t := tables[0]

	header := "| " + strings.Join(t.Headers, " | ") + " |"
	separator := "|" + strings.Repeat(" --- |", len(t.Headers))
	prefix := header + "\n" + separator
	prefixTokens := c.estimator.Estimate(prefix)

	var rows []string
	rowTokens := 0
	flush := func() {
		if len(rows) == 0 {
			return
		}
		add(prefix+"\n"+strings.Join(rows, "\n"), TypeTableFragment)
		rows = nil
		rowTokens = 0
	}
	for _, row := range t.Rows {
		line := "| " + strings.Join(row, " | ") + " |"
		tokens := c.estimator.Estimate(line)
		if len(rows) > 0 && prefixTokens+rowTokens+tokens > c.targetSize {
			flush()
		}
		rows = append(rows, line)
		rowTokens += tokens
	}
	flush()
}

// chunkVariables batches key/value pairs into groups bounded by the target
// size, in original order, never splitting a single variable.
func (c *Chunker) chunkVariables(vars []decode.Variable, add func(string, ChunkType)) {
	var lines []string
	groupTokens := 0
	flush := func() {
		if len(lines) == 0 {
			return
		}
		add(strings.Join(lines, "\n"), TypeVariableGroup)
		lines = nil
		groupTokens = 0
	}
	for _, v := range vars {
		line := v.Key + ": " + v.Value
		tokens := c.estimator.Estimate(line)
		if len(lines) > 0 && groupTokens+tokens > c.targetSize {
			flush()
		}
		lines = append(lines, line)
		groupTokens += tokens
	}
	flush()
}

// remainingText strips table spans and variable lines from the document text;
// both were already emitted as their own chunk types.
func remainingText(doc *decode.ParsedDocument) string {
	lines := strings.Split(doc.Text, "\n")
	inTable := make(map[int]bool)
	for _, t := range mdtable.Detect(doc.Text) {
		for i := t.StartLine; i <= t.EndLine; i++ {
			inTable[i] = true
		}
	}
	var kept []string
	for i, line := range lines {
		if inTable[i] || decode.IsVariableLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
