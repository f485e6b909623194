package template

import (
	"strings"
	"testing"
)

func TestExtractGlossaryShapes(t *testing.T) {
	doc := strings.Join([]string{
		"# Glossary",
		"",
		"Assay: a procedure for measuring biochemical activity",
		"**Titer** - concentration of a substance in solution",
		"- Buffer: a solution resisting pH change",
		"| Term | Definition |",
		"| --- | --- |",
		"| Aliquot | a measured sub-sample |",
		"",
		"# Methods",
		"",
		"Protocol body text follows.",
	}, "\n")

	s := Parse(doc)
	defs := make(map[string]string)
	for _, e := range s.Glossary {
		defs[e.Term] = e.Definition
	}

	wantTerms := []string{"Assay", "Titer", "Buffer", "Aliquot"}
	for _, term := range wantTerms {
		if defs[term] == "" {
			t.Errorf("glossary missing term %q: %+v", term, s.Glossary)
		}
	}
	if !strings.Contains(defs["Assay"], "biochemical activity") {
		t.Errorf("Assay definition = %q", defs["Assay"])
	}
	if !strings.Contains(defs["Aliquot"], "sub-sample") {
		t.Errorf("Aliquot definition = %q", defs["Aliquot"])
	}
}

func TestGlossaryContinuationLines(t *testing.T) {
	doc := strings.Join([]string{
		"# Definitions",
		"",
		"Assay: a procedure for measuring",
		"the activity of a target molecule",
		"Titer: concentration measure",
	}, "\n")

	s := Parse(doc)
	if len(s.Glossary) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(s.Glossary), s.Glossary)
	}
	if !strings.Contains(s.Glossary[0].Definition, "target molecule") {
		t.Errorf("continuation not appended: %q", s.Glossary[0].Definition)
	}
}

func TestGlossaryAbsentWithoutHeading(t *testing.T) {
	s := Parse("# Methods\n\nAssay: not a glossary entry\n")
	if len(s.Glossary) != 0 {
		t.Errorf("expected no glossary, got %+v", s.Glossary)
	}
}
