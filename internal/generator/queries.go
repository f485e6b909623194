package generator

import (
	"strings"

	"github.com/AdeenoAi/fdabc/internal/template"
)

// maxQueries caps retrieval fan-out per section.
const maxQueries = 5

// BuildQueries derives retrieval queries for a section: the section name
// seeds the set, then content-type hints, then each template field prefixed
// by the section name, then the last two ancestor path segments joined.
// Capped at maxQueries, duplicates dropped.
func BuildQueries(info template.SectionInfo) []string {
	queries := []string{info.Name}
	seen := map[string]bool{strings.ToLower(info.Name): true}

	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || seen[strings.ToLower(q)] || len(queries) >= maxQueries {
			return
		}
		seen[strings.ToLower(q)] = true
		queries = append(queries, q)
	}

	for _, hint := range info.Context.ContentTypes {
		add(info.Name + " " + hint)
	}
	for _, field := range info.Placeholders {
		add(info.Name + " " + field.Name)
	}
	if len(info.Path) >= 2 {
		add(strings.Join(info.Path[len(info.Path)-2:], " "))
	}
	return queries
}
