package generator

import (
	"testing"

	"github.com/AdeenoAi/fdabc/internal/template"
)

func TestBuildQueriesSeedsAndCaps(t *testing.T) {
	info := template.SectionInfo{
		Found: true,
		Name:  "Results",
		Path:  []string{"Study", "Analysis", "Results"},
		Context: template.Context{
			ContentTypes: []string{"results", "methodology"},
		},
		Placeholders: []template.Field{
			{Name: "dose_amount"},
			{Name: "response_rate"},
			{Name: "sample_size"},
		},
	}

	queries := BuildQueries(info)
	if len(queries) != maxQueries {
		t.Fatalf("got %d queries, want %d: %v", len(queries), maxQueries, queries)
	}
	if queries[0] != "Results" {
		t.Errorf("first query = %q, want section name", queries[0])
	}
	seen := make(map[string]bool)
	for _, q := range queries {
		if seen[q] {
			t.Errorf("duplicate query %q", q)
		}
		seen[q] = true
	}
}

func TestBuildQueriesPathSegmentsWhenRoomRemains(t *testing.T) {
	info := template.SectionInfo{
		Found: true,
		Name:  "Dosing",
		Path:  []string{"Methods", "Dosing"},
	}
	queries := BuildQueries(info)
	want := []string{"Dosing", "Methods Dosing"}
	if len(queries) != len(want) {
		t.Fatalf("queries = %v, want %v", queries, want)
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("queries[%d] = %q, want %q", i, queries[i], want[i])
		}
	}
}
