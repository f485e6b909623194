package mdtable

import (
	"sort"
	"strings"
)

// matchThreshold is the minimum header-token overlap for a generated table to
// count as a match for a template table.
const matchThreshold = 0.3

// Tokenize lowercases text and splits it into alphanumeric word tokens.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// HeaderOverlap scores how well a table's headers match a template table's
// headers: shared tokens divided by the template's token count.
func HeaderOverlap(headers, templateHeaders []string) float64 {
	templateTokens := headerTokenSet(templateHeaders)
	if len(templateTokens) == 0 {
		return 0
	}
	tokens := headerTokenSet(headers)
	shared := 0
	for tok := range templateTokens {
		if tokens[tok] {
			shared++
		}
	}
	return float64(shared) / float64(len(templateTokens))
}

func headerTokenSet(headers []string) map[string]bool {
	set := make(map[string]bool)
	for _, h := range headers {
		for _, tok := range Tokenize(h) {
			set[tok] = true
		}
	}
	return set
}

// BestOverlap returns the highest overlap of a table's headers across all
// template header sets.
func BestOverlap(headers []string, templates [][]string) float64 {
	best := 0.0
	for _, th := range templates {
		if score := HeaderOverlap(headers, th); score > best {
			best = score
		}
	}
	return best
}

// EnforceCount trims content so it contains at most len(templateHeaders)
// tables. Found tables are ranked by best header overlap against the template
// tables; tables clearing the match threshold win first (ties broken by
// document order), then document order fills any remaining slots. Losing
// tables are removed from the content entirely, all their lines at once, so
// no header-less fragment survives.
func EnforceCount(content string, templateHeaders [][]string) string {
	tables := Detect(content)
	declared := len(templateHeaders)
	if len(tables) <= declared {
		return content
	}

	type ranked struct {
		index   int
		overlap float64
	}
	scores := make([]ranked, len(tables))
	for i, t := range tables {
		scores[i] = ranked{index: i, overlap: BestOverlap(t.Headers, templateHeaders)}
	}
	sort.SliceStable(scores, func(a, b int) bool {
		am, bm := scores[a].overlap >= matchThreshold, scores[b].overlap >= matchThreshold
		if am != bm {
			return am
		}
		if am && scores[a].overlap != scores[b].overlap {
			return scores[a].overlap > scores[b].overlap
		}
		return scores[a].index < scores[b].index
	})

	keep := make(map[int]bool, declared)
	for _, s := range scores[:declared] {
		keep[s.index] = true
	}

	drop := make(map[int]bool)
	for i, t := range tables {
		if keep[i] {
			continue
		}
		for line := t.StartLine; line <= t.EndLine; line++ {
			drop[line] = true
		}
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if !drop[i] {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
