package generator

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/template"
)

// Window sizes around a field-name mention when hunting for its value.
const (
	windowBefore = 100
	windowAfter  = 200
)

// fillFields resolves each template field against the retrieved passages.
// For a field, the highest-scoring passage mentioning the field name is
// searched first; if no passage mentions it, the single top-ranked result is
// tried. An unresolved field is simply absent from the returned map.
func fillFields(fields []template.Field, results []Result) map[string]string {
	values := make(map[string]string)
	for _, f := range fields {
		if v := extractFieldValue(f.Name, results); v != "" {
			values[f.Name] = v
		}
	}
	return values
}

func extractFieldValue(name string, results []Result) string {
	// Documents write "Dose Amount", templates write {dose_amount}; both
	// spellings are searched.
	needles := []string{strings.ToLower(name), strings.ToLower(spacedName(name))}

	// Results are already score-sorted, so the first mention wins.
	for _, r := range results {
		textLower := strings.ToLower(r.Text)
		idx := -1
		for _, needle := range needles {
			if i := strings.Index(textLower, needle); i >= 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		start := idx - windowBefore
		if start < 0 {
			start = 0
		}
		end := idx + len(name) + windowAfter
		if end > len(r.Text) {
			end = len(r.Text)
		}
		if v := matchFieldPatterns(name, r.Text[start:end]); v != "" {
			return v
		}
	}

	if len(results) > 0 {
		return matchFieldPatterns(name, results[0].Text)
	}
	return ""
}

// matchFieldPatterns tries the value-extraction fallbacks in priority order:
// "field: value", "field = value", then "field is value".
func matchFieldPatterns(name, window string) string {
	// Underscores in the field name match either form in the text.
	quoted := strings.ReplaceAll(regexp.QuoteMeta(name), "_", `[ _]`)
	patterns := []string{
		`(?i)` + quoted + `\s*[:=]\s*([^\n|]+)`,
		`(?i)` + quoted + `\s+is\s+([^\n|]+)`,
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if m := re.FindStringSubmatch(window); m != nil {
			value := strings.TrimSpace(m[1])
			value = strings.TrimRight(value, ".,;")
			if value != "" {
				return value
			}
		}
	}
	return ""
}

// spacedName turns snake_case field names into the spaced form documents
// actually use ("dose_amount" matches "Dose Amount: 10 mg").
func spacedName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
