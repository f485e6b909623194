package template

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// tocMaxLines bounds the TOC body when no level-1 heading terminates it.
const tocMaxLines = 60

var tocSynonyms = []string{"table of contents", "contents", "outline"}

var (
	tocLinkPattern   = regexp.MustCompile(`^\s*(?:[-*+]\s*)?\[([^\]]+)\]\([^)]*\)`)
	tocNumberPattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\.?\s+(\S.*?)\s*(?:\.{2,}\s*\d+)?\s*$`)
	tocLeaderPattern = regexp.MustCompile(`^\s*(.+?)\s*\.{3,}\s*\d+\s*$`)
	tocBulletPattern = regexp.MustCompile(`^\s*[-*+]\s+(\S.*)$`)
)

// tocRule matches one TOC entry shape. Rules run in priority order; the first
// match wins for a given line.
type tocRule struct {
	name  string
	match func(line string) (TOCEntry, bool)
}

var tocRules = []tocRule{
	{"markdown link", func(line string) (TOCEntry, bool) {
		if m := tocLinkPattern.FindStringSubmatch(line); m != nil {
			return TOCEntry{Name: strings.TrimSpace(m[1]), Level: indentLevel(line), RawLine: line}, true
		}
		return TOCEntry{}, false
	}},
	{"numbered outline", func(line string) (TOCEntry, bool) {
		if m := tocNumberPattern.FindStringSubmatch(line); m != nil {
			level := strings.Count(m[1], ".") + 1
			return TOCEntry{Name: strings.TrimSpace(m[2]), Level: level, RawLine: line}, true
		}
		return TOCEntry{}, false
	}},
	{"dotted leader", func(line string) (TOCEntry, bool) {
		if m := tocLeaderPattern.FindStringSubmatch(line); m != nil {
			return TOCEntry{Name: strings.TrimSpace(m[1]), Level: indentLevel(line), RawLine: line}, true
		}
		return TOCEntry{}, false
	}},
	{"bullet", func(line string) (TOCEntry, bool) {
		if m := tocBulletPattern.FindStringSubmatch(line); m != nil {
			return TOCEntry{Name: strings.TrimSpace(m[1]), Level: indentLevel(line), RawLine: line}, true
		}
		return TOCEntry{}, false
	}},
	{"pipe table", func(line string) (TOCEntry, bool) {
		if !mdtable.IsRow(line) || mdtable.IsSeparator(line) {
			return TOCEntry{}, false
		}
		cells := mdtable.SplitCells(line)
		if len(cells) == 0 || cells[0] == "" {
			return TOCEntry{}, false
		}
		return TOCEntry{Name: cells[0], Level: 1, RawLine: line}, true
	}},
	{"title case", func(line string) (TOCEntry, bool) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !isTitleCase(trimmed) {
			return TOCEntry{}, false
		}
		return TOCEntry{Name: trimmed, Level: indentLevel(line), RawLine: line}, true
	}},
}

// extractTOC finds a contents heading and parses its body against the entry
// shapes. The body ends at the next level-1 heading or after tocMaxLines.
func extractTOC(lines []string) []TOCEntry {
	start := findHeadingLine(lines, tocSynonyms)
	if start < 0 {
		return nil
	}

	var entries []TOCEntry
	end := start + 1 + tocMaxLines
	if end > len(lines) {
		end = len(lines)
	}
	for i := start + 1; i < end; i++ {
		line := lines[i]
		// Only an explicit level-1 heading ends the TOC; outline entries
		// themselves often look like heuristic headers.
		if h := detectHeader(line, i); h != nil && h.Explicit && h.Level == 1 {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, rule := range tocRules {
			if entry, ok := rule.match(line); ok {
				// Header rows of a TOC table ("Section | Page") are noise.
				if strings.EqualFold(entry.Name, "section") || strings.EqualFold(entry.Name, "page") {
					break
				}
				entries = append(entries, entry)
				break
			}
		}
	}
	return entries
}

// findHeadingLine locates the first heading whose text matches one of the
// given synonyms.
func findHeadingLine(lines []string, synonyms []string) int {
	for i, line := range lines {
		h := detectHeader(line, i)
		if h == nil {
			continue
		}
		lower := strings.ToLower(h.Text)
		for _, syn := range synonyms {
			if lower == syn || strings.Contains(lower, syn) {
				return i
			}
		}
	}
	return -1
}

// indentLevel derives a default outline level from leading whitespace, two
// spaces (or one tab) per level.
func indentLevel(line string) int {
	spaces := 0
	for _, r := range line {
		if r == ' ' {
			spaces++
		} else if r == '\t' {
			spaces += 2
		} else {
			break
		}
	}
	return spaces/2 + 1
}

func isTitleCase(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 8 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := rune(w[0])
		if r >= 'A' && r <= 'Z' {
			capitalized++
		}
	}
	return capitalized >= (len(words)+1)/2
}
