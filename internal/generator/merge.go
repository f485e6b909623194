package generator

import (
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
	"github.com/AdeenoAi/fdabc/internal/template"
)

// skeletonDensityLimit is the unresolved-placeholder ratio above which
// per-placeholder interleaving is abandoned for the skeleton-first strategy.
const skeletonDensityLimit = 0.5

// mergeTemplate substitutes resolved field values into the template body.
// When more than half the placeholders stay unresolved, interleaving would
// produce mostly-empty prose, so only the template's structural skeleton is
// kept and the generated content follows it.
func mergeTemplate(info template.SectionInfo, values map[string]string, generated string) string {
	filled := info.Content
	resolved := 0
	for _, f := range info.Placeholders {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		filled = replaceIgnoreCase(filled, f.Placeholder, v)
		resolved++
	}

	total := len(info.Placeholders)
	if total > 0 && float64(total-resolved)/float64(total) > skeletonDensityLimit {
		skeleton := extractSkeleton(info.Content)
		if skeleton != "" {
			return skeleton + "\n\n" + generated
		}
		return generated
	}

	if strings.TrimSpace(generated) != "" {
		return filled + "\n\n" + generated
	}
	return filled
}

// extractSkeleton keeps only the structural lines of a template body:
// headings, list markers, table frames, and code fences.
func extractSkeleton(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			kept = append(kept, line)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ "):
			kept = append(kept, line)
		case mdtable.IsRow(line):
			kept = append(kept, line)
		case strings.HasPrefix(trimmed, "```"):
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// replaceIgnoreCase replaces every occurrence of old in s, matching
// case-insensitively, with new.
func replaceIgnoreCase(s, old, new string) string {
	if old == "" {
		return s
	}
	lowerS := strings.ToLower(s)
	lowerOld := strings.ToLower(old)

	var b strings.Builder
	for {
		idx := strings.Index(lowerS, lowerOld)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(new)
		s = s[idx+len(old):]
		lowerS = lowerS[idx+len(old):]
	}
}
