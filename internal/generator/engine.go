// Package generator builds section content: retrieval queries per template
// field, passage deduplication, placeholder filling, LLM synthesis, and
// enforcement of the template's declared table count on the output.
package generator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/mdtable"
	"github.com/AdeenoAi/fdabc/internal/template"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
)

// Completer produces text from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder generates embeddings for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Style selects the output rendering.
type Style string

const (
	StyleMarkdown Style = "markdown"
	StyleDetailed Style = "detailed" // markdown plus a sources footer
	StyleConcise  Style = "concise"  // near-duplicate sentences removed
)

// Options tune one generation call.
type Options struct {
	TopK  int
	Style Style
}

// Source identifies a file that contributed to a generated section.
type Source struct {
	FileName string  `json:"file_name"`
	Score    float32 `json:"score"`
}

// Metadata describes how a section was generated.
type Metadata struct {
	Queries      []string `json:"queries"`
	Retrieved    int      `json:"retrieved"`
	FilledFields []string `json:"filled_fields"`
	Degraded     bool     `json:"degraded"`
	Style        Style    `json:"style"`
}

// SectionResult is the output of generating one section.
type SectionResult struct {
	Section  string   `json:"section"`
	Content  string   `json:"content"`
	Sources  []Source `json:"sources"`
	Metadata Metadata `json:"metadata"`
}

// Engine generates section content from the indexed corpus.
type Engine struct {
	store      vectorstore.VectorStore
	embedder   Embedder
	completer  Completer
	collection string
	topK       int
}

// New creates a generation engine. topK is the per-query retrieval default,
// overridable per call.
func New(store vectorstore.VectorStore, embedder Embedder, completer Completer, collection string, topK int) *Engine {
	return &Engine{
		store:      store,
		embedder:   embedder,
		completer:  completer,
		collection: collection,
		topK:       topK,
	}
}

// GenerateSection fills one template section from the corpus. Backend
// failures degrade to a clearly marked placeholder body instead of an error,
// so multi-section batches keep making progress.
func (e *Engine) GenerateSection(ctx context.Context, info template.SectionInfo, opts Options) *SectionResult {
	logger := contextutil.LoggerFromContext(ctx)

	topK := opts.TopK
	if topK <= 0 {
		topK = e.topK
	}
	style := opts.Style
	if style == "" {
		style = StyleMarkdown
	}

	result := &SectionResult{
		Section:  info.Name,
		Metadata: Metadata{Style: style},
	}

	queries := BuildQueries(info)
	result.Metadata.Queries = queries

	retrieved, err := e.retrieve(ctx, queries, topK)
	if err != nil {
		logger.WarnContext(ctx, "retrieval unavailable, generating placeholder",
			"section", info.Name, "error", err)
		result.Content = placeholderBody(info, "retrieval backend unavailable")
		result.Metadata.Degraded = true
		return result
	}
	result.Metadata.Retrieved = len(retrieved)
	result.Sources = collectSources(retrieved)

	values := fillFields(info.Placeholders, retrieved)
	for name := range values {
		result.Metadata.FilledFields = append(result.Metadata.FilledFields, name)
	}
	sort.Strings(result.Metadata.FilledFields)

	generated, err := e.completer.Complete(ctx, buildPrompt(info, values, retrieved))
	if err != nil || strings.TrimSpace(generated) == "" {
		logger.WarnContext(ctx, "completion unavailable, generating placeholder",
			"section", info.Name, "error", err)
		result.Content = finishContent(info, mergeTemplate(info, values, placeholderNote("completion service unavailable")), style)
		result.Metadata.Degraded = true
		return result
	}

	content := mergeTemplate(info, values, generated)
	content = finishContent(info, content, style)
	if style == StyleDetailed {
		content = appendSourcesFooter(content, result.Sources)
	}
	result.Content = content
	return result
}

// GenerateDocument generates every given section in order and joins the
// results into one markdown document. Individual section failures degrade to
// placeholders, never abort the batch.
func (e *Engine) GenerateDocument(ctx context.Context, sections []template.SectionInfo, opts Options) (string, []*SectionResult) {
	var results []*SectionResult
	var parts []string
	for _, info := range sections {
		r := e.GenerateSection(ctx, info, opts)
		results = append(results, r)
		parts = append(parts, r.Content)
	}
	return strings.Join(parts, "\n\n"), results
}

// finishContent applies table repair and count enforcement, the section
// heading, and the output style.
func finishContent(info template.SectionInfo, content string, style Style) string {
	content = repairTables(content)

	var templateHeaders [][]string
	for _, t := range info.Tables {
		templateHeaders = append(templateHeaders, t.Headers)
	}
	content = mdtable.EnforceCount(content, templateHeaders)

	content = ensureHeading(info, content)
	if style == StyleConcise {
		content = dedupSentences(content)
	}
	return strings.TrimSpace(content)
}

// repairTables fixes malformed tables in place and drops the unrepairable.
func repairTables(content string) string {
	tables := mdtable.Detect(content)
	if len(tables) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	var out []string
	skip := make(map[int]bool)
	replacement := make(map[int]string)

	for _, t := range tables {
		if !mdtable.IsMalformed(t) {
			continue
		}
		for i := t.StartLine; i <= t.EndLine; i++ {
			skip[i] = true
		}
		if repaired, ok := mdtable.Repair(t); ok {
			replacement[t.StartLine] = repaired.Render()
		}
	}

	for i, line := range lines {
		if r, ok := replacement[i]; ok {
			out = append(out, r)
		}
		if skip[i] {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// ensureHeading prepends the section's own heading when the content does not
// already start with one.
func ensureHeading(info template.SectionInfo, content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "#") {
		return content
	}
	level := info.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + info.Name + "\n\n" + content
}

// dedupSentences removes sentences whose first 50 characters repeat an
// earlier sentence, the concise-style rendering.
func dedupSentences(content string) string {
	seen := make(map[string]bool)
	var kept []string
	for _, sentence := range strings.Split(content, ". ") {
		key := sentence
		if len(key) > 50 {
			key = key[:50]
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, sentence)
	}
	return strings.Join(kept, ". ")
}

func collectSources(results []Result) []Source {
	seen := make(map[string]bool)
	var sources []Source
	for _, r := range results {
		if r.FileName == "" || seen[r.FileName] {
			continue
		}
		seen[r.FileName] = true
		sources = append(sources, Source{FileName: r.FileName, Score: r.Score})
	}
	return sources
}

func placeholderBody(info template.SectionInfo, reason string) string {
	return fmt.Sprintf("%s\n\n> %s\n", ensureHeading(info, ""), placeholderNote(reason))
}

func placeholderNote(reason string) string {
	return fmt.Sprintf("[content unavailable: %s]", reason)
}

// appendSourcesFooter lists contributing files under the section, the
// detailed-style rendering.
func appendSourcesFooter(content string, sources []Source) string {
	if len(sources) == 0 {
		return content
	}
	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\n**Sources:**\n")
	for _, s := range sources {
		fmt.Fprintf(&b, "- %s (score %.2f)\n", s.FileName, s.Score)
	}
	return strings.TrimSpace(b.String())
}
