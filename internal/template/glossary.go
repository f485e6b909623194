package template

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

const glossaryMaxLines = 120

var glossarySynonyms = []string{"glossary", "definitions", "terminology", "abbreviations"}

var (
	glossaryColonPattern  = regexp.MustCompile(`^\s*([A-Z][^:]{0,60}?)\s*:\s+(\S.*)$`)
	glossaryMarkedPattern = regexp.MustCompile(`^\s*(?:\*\*|\*|__|_)([^*_]+?)(?:\*\*|\*|__|_)\s*[:\-–—]?\s*(.*)$`)
	glossaryBulletPattern = regexp.MustCompile(`^\s*[-*+]\s+([^:–—\-]{1,60}?)\s*[:\-–—]\s+(\S.*)$`)
)

// glossaryRule matches one glossary entry shape; rules run in priority order.
type glossaryRule struct {
	name  string
	match func(line string) (GlossaryEntry, bool)
}

var glossaryRules = []glossaryRule{
	{"colon", func(line string) (GlossaryEntry, bool) {
		if mdtable.IsRow(line) {
			return GlossaryEntry{}, false
		}
		if m := glossaryColonPattern.FindStringSubmatch(line); m != nil {
			return GlossaryEntry{Term: strings.TrimSpace(m[1]), Definition: strings.TrimSpace(m[2])}, true
		}
		return GlossaryEntry{}, false
	}},
	{"marked term", func(line string) (GlossaryEntry, bool) {
		if m := glossaryMarkedPattern.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[1]) != "" {
			return GlossaryEntry{Term: strings.TrimSpace(m[1]), Definition: strings.TrimSpace(m[2])}, true
		}
		return GlossaryEntry{}, false
	}},
	{"bullet", func(line string) (GlossaryEntry, bool) {
		if m := glossaryBulletPattern.FindStringSubmatch(line); m != nil {
			return GlossaryEntry{Term: strings.TrimSpace(m[1]), Definition: strings.TrimSpace(m[2])}, true
		}
		return GlossaryEntry{}, false
	}},
	{"pipe table", func(line string) (GlossaryEntry, bool) {
		if !mdtable.IsRow(line) || mdtable.IsSeparator(line) {
			return GlossaryEntry{}, false
		}
		cells := mdtable.SplitCells(line)
		if len(cells) < 2 || cells[0] == "" || cells[1] == "" {
			return GlossaryEntry{}, false
		}
		if strings.EqualFold(cells[0], "term") {
			return GlossaryEntry{}, false
		}
		return GlossaryEntry{Term: cells[0], Definition: cells[1]}, true
	}},
}

// extractGlossary finds a glossary heading and parses its body. Unrecognized
// non-blank lines continue the previous entry's definition until the next
// recognized term or heading.
func extractGlossary(lines []string) []GlossaryEntry {
	start := findHeadingLine(lines, glossarySynonyms)
	if start < 0 {
		return nil
	}

	var entries []GlossaryEntry
	end := start + 1 + glossaryMaxLines
	if end > len(lines) {
		end = len(lines)
	}
	for i := start + 1; i < end; i++ {
		line := lines[i]
		if h := detectHeader(line, i); h != nil && h.Explicit && h.Level <= 2 {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		matched := false
		for _, rule := range glossaryRules {
			if entry, ok := rule.match(line); ok {
				entries = append(entries, entry)
				matched = true
				break
			}
		}
		if !matched && len(entries) > 0 {
			last := &entries[len(entries)-1]
			if last.Definition != "" {
				last.Definition += " "
			}
			last.Definition += trimmed
		}
	}
	return entries
}
