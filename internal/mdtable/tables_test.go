package mdtable

import (
	"strings"
	"testing"
)

func TestDetectFindsTableSpans(t *testing.T) {
	text := strings.Join([]string{
		"Some prose before.",
		"| Dose | Response |",
		"| --- | --- |",
		"| 10 mg | 42% |",
		"",
		"More prose.",
		"| Name | Value |",
		"| A | 1 |",
	}, "\n")

	tables := Detect(text)
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}

	first := tables[0]
	if first.StartLine != 1 || first.EndLine != 3 {
		t.Errorf("first table span = [%d,%d], want [1,3]", first.StartLine, first.EndLine)
	}
	if len(first.Headers) != 2 || first.Headers[0] != "Dose" || first.Headers[1] != "Response" {
		t.Errorf("unexpected headers: %v", first.Headers)
	}
	if len(first.Rows) != 1 || first.Rows[0][0] != "10 mg" {
		t.Errorf("unexpected rows: %v", first.Rows)
	}
	if len(first.RowLines) != 1 || first.RowLines[0] != 3 {
		t.Errorf("unexpected row lines: %v", first.RowLines)
	}

	second := tables[1]
	if second.StartLine != 6 || second.EndLine != 7 {
		t.Errorf("second table span = [%d,%d], want [6,7]", second.StartLine, second.EndLine)
	}
}

func TestIsSeparator(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"| --- | --- |", true},
		{"|---|---|", true},
		{"| :--- | ---: |", true},
		{"| Dose | Response |", false},
		{"plain text", false},
	}
	for _, tt := range tests {
		if got := IsSeparator(tt.line); got != tt.want {
			t.Errorf("IsSeparator(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestRenderNormalizesSeparator(t *testing.T) {
	table := Table{
		Headers: []string{"Dose", "Response", "Units"},
		Rows:    [][]string{{"10", "42", "mg"}},
	}
	rendered := table.Render()
	lines := strings.Split(rendered, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), rendered)
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("separator = %q, want three columns", lines[1])
	}
}
