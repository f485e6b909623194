package chunker

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var pageBreakPattern = regexp.MustCompile(`(?m)^--- Page \d+ ---$`)

// separators is the recursive splitting ladder: paragraph break, line break,
// sentence break, word break, then a raw character fallback.
var separators = []string{"\n\n\n", "\n\n", "\n", ". ", " "}

// splitPlainText splits text on page-break markers, then on markdown header
// boundaries, then recursively by separator, packing units up to the target
// size with a one-unit overlap carry.
func (c *Chunker) splitPlainText(content string) []string {
	var out []string
	for _, page := range pageBreakPattern.Split(content, -1) {
		if strings.TrimSpace(page) == "" {
			continue
		}
		for _, block := range splitOnHeaders(page) {
			if strings.TrimSpace(block) == "" {
				continue
			}
			if c.estimator.Estimate(block) <= c.targetSize {
				out = append(out, block)
				continue
			}
			out = append(out, c.splitRecursive(block, 0)...)
		}
	}
	return out
}

// splitOnHeaders uses the markdown AST to find heading start offsets and cuts
// the text at each heading's line start.
func splitOnHeaders(content string) []string {
	src := []byte(content)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var offsets []int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Lines().Len() > 0 {
			start := h.Lines().At(0).Start
			for start > 0 && src[start-1] != '\n' {
				start--
			}
			offsets = append(offsets, start)
		}
		return ast.WalkContinue, nil
	})

	if len(offsets) == 0 {
		return []string{content}
	}

	var blocks []string
	prev := 0
	for _, off := range offsets {
		if off > prev {
			blocks = append(blocks, content[prev:off])
		}
		prev = off
	}
	blocks = append(blocks, content[prev:])
	return blocks
}

// splitRecursive splits oversized text with the separator at the given ladder
// level, recursing into still-oversized units with the next separator.
func (c *Chunker) splitRecursive(content string, level int) []string {
	if c.estimator.Estimate(content) <= c.targetSize {
		return []string{content}
	}
	if level >= len(separators) {
		return c.hardSplit(content)
	}

	sep := separators[level]
	parts := strings.Split(content, sep)
	if len(parts) == 1 {
		return c.splitRecursive(content, level+1)
	}

	var units []string
	for i, p := range parts {
		// Keep the sentence delimiter attached so packed chunks read whole.
		if sep == ". " && i < len(parts)-1 {
			p += "."
		}
		if p == "" {
			continue
		}
		if c.estimator.Estimate(p) > c.targetSize {
			units = append(units, c.splitRecursive(p, level+1)...)
		} else {
			units = append(units, p)
		}
	}
	return c.pack(units, joinerFor(sep))
}

// pack accumulates units into chunks up to the target size. When a chunk
// flushes, its last unit is carried into the next chunk if it fits the
// overlap budget, preserving context across the boundary.
func (c *Chunker) pack(units []string, joiner string) []string {
	var chunks []string
	var current []string
	currentTokens := 0
	carriedOnly := false

	for _, u := range units {
		tokens := c.estimator.Estimate(u)
		if len(current) > 0 && currentTokens+tokens > c.targetSize {
			// A chunk holding nothing but the carried overlap unit would
			// duplicate the previous flush; drop the carry instead.
			if carriedOnly && len(current) == 1 {
				current = nil
				currentTokens = 0
			} else {
				chunks = append(chunks, strings.Join(current, joiner))
				last := current[len(current)-1]
				lastTokens := c.estimator.Estimate(last)
				if len(current) > 1 && lastTokens <= c.overlap {
					current = []string{last}
					currentTokens = lastTokens
					carriedOnly = true
				} else {
					current = nil
					currentTokens = 0
				}
			}
		}
		current = append(current, u)
		currentTokens += tokens
		if len(current) > 1 {
			carriedOnly = false
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, joiner))
	}
	return chunks
}

// hardSplit is the last-resort character fallback. It cuts on rune
// boundaries so a multibyte character is never split across chunks.
func (c *Chunker) hardSplit(content string) []string {
	limit := c.targetSize * 4 // estimator floor: four characters per token
	if limit <= 0 {
		limit = 1
	}
	runes := []rune(content)
	var out []string
	for len(runes) > limit {
		out = append(out, string(runes[:limit]))
		runes = runes[limit:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func joinerFor(sep string) string {
	if sep == ". " {
		return " "
	}
	return sep
}
