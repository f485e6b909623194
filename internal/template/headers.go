package template

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// headerCandidate is a line that looks like it might start a section, before
// validation has run.
type headerCandidate struct {
	Text      string
	Level     int
	LineIndex int
	Explicit  bool // written with markdown hashes, not heuristically inferred
}

var (
	hashHeaderPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	numberedPattern   = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(\S.*)$`)
	allCapsPattern    = regexp.MustCompile(`^[A-Z][A-Z0-9&/\- ]{2,60}$`)

	purelyNumericPattern = regexp.MustCompile(`^[\d\s.,%\-–]+$`)
	capsCodePattern      = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-/]*(?:\s+[A-Z0-9][A-Z0-9\-/]*){0,2}$`)
	unitQuantityPattern  = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:mg|g|kg|µg|ug|ml|l|mm|cm|m|%|units?)\b`)
)

// headerLookahead bounds how far past a candidate we look for body content.
const headerLookahead = 5

// detectHeader returns a header candidate for a line, or nil. Validation is a
// separate step (validateHeader) so each rejection rule stays independently
// testable.
func detectHeader(line string, index int) *headerCandidate {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if m := hashHeaderPattern.FindStringSubmatch(trimmed); m != nil {
		return &headerCandidate{Text: strings.TrimSpace(m[2]), Level: len(m[1]), LineIndex: index, Explicit: true}
	}
	if m := numberedPattern.FindStringSubmatch(trimmed); m != nil {
		level := strings.Count(m[1], ".") + 1
		if level <= 6 {
			return &headerCandidate{Text: strings.TrimSpace(m[2]), Level: level, LineIndex: index}
		}
	}
	if allCapsPattern.MatchString(trimmed) {
		return &headerCandidate{Text: trimmed, Level: 1, LineIndex: index}
	}
	return nil
}

// headerRule rejects a candidate for one specific reason. Rules run in order;
// the first rejection wins.
type headerRule struct {
	name   string
	reject func(c *headerCandidate, lines []string) bool
}

var headerRules = []headerRule{
	{
		name: "table delimiter",
		reject: func(c *headerCandidate, _ []string) bool {
			return strings.Contains(c.Text, "|")
		},
	},
	{
		name: "purely numeric",
		reject: func(c *headerCandidate, _ []string) bool {
			return purelyNumericPattern.MatchString(c.Text)
		},
	},
	{
		// Catalog codes and part numbers masquerade as headers only in
		// heuristically-detected shapes; explicit hash headers are trusted.
		name: "all-caps code",
		reject: func(c *headerCandidate, _ []string) bool {
			if c.Explicit || c.Text != strings.ToUpper(c.Text) {
				return false
			}
			if !capsCodePattern.MatchString(c.Text) {
				return false
			}
			return !containsScientificKeyword(c.Text)
		},
	},
	{
		name: "trailing comma",
		reject: func(c *headerCandidate, _ []string) bool {
			return strings.HasSuffix(c.Text, ",")
		},
	},
	{
		name: "unit quantity",
		reject: func(c *headerCandidate, _ []string) bool {
			return !c.Explicit && unitQuantityPattern.MatchString(c.Text)
		},
	},
	{
		name: "no content follows",
		reject: func(c *headerCandidate, lines []string) bool {
			if c.Explicit {
				return false
			}
			end := c.LineIndex + 1 + headerLookahead
			if end > len(lines) {
				end = len(lines)
			}
			for i := c.LineIndex + 1; i < end; i++ {
				trimmed := strings.TrimSpace(lines[i])
				if trimmed == "" || mdtable.IsRow(lines[i]) {
					continue
				}
				if h := detectHeader(lines[i], i); h != nil {
					continue
				}
				return false
			}
			return true
		},
	},
}

// validateHeader runs the rejection cascade; a candidate survives only when
// no rule fires.
func validateHeader(c *headerCandidate, lines []string) bool {
	for _, rule := range headerRules {
		if rule.reject(c, lines) {
			return false
		}
	}
	return true
}
