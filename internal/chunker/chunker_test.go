package chunker

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/AdeenoAi/fdabc/internal/decode"
	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// wordEstimator counts whitespace-separated words, giving tests exact control
// over sizes without depending on character counts.
type wordEstimator struct{}

func (wordEstimator) Estimate(text string) int { return len(strings.Fields(text)) }

func sampleDoc(text string) *decode.ParsedDocument {
	return decode.FromText(text, "/data/report.md", "text")
}

func TestChunkDocumentIdempotent(t *testing.T) {
	text := strings.Join([]string{
		"# Results",
		"",
		"Dose: 10 mg",
		"Duration: 6 weeks",
		"",
		"| Dose | Response |",
		"| --- | --- |",
		"| 10 | 42 |",
		"",
		"The observed response increased with dose across all cohorts.",
	}, "\n")

	c := New(50, 10, 100, HeuristicEstimator{})
	first := c.Document(sampleDoc(text))
	second := c.Document(sampleDoc(text))

	if len(first) == 0 {
		t.Fatal("no chunks produced")
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d ID differs: %q vs %q", i, first[i].ID, second[i].ID)
		}
		if first[i].UUID != second[i].UUID {
			t.Errorf("chunk %d UUID differs", i)
		}
		if first[i].Index != second[i].Index || first[i].TokenCount != second[i].TokenCount {
			t.Errorf("chunk %d index/tokens differ", i)
		}
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d text differs", i)
		}
	}
	if first[0].ID != "report.md_chunk_0" {
		t.Errorf("first chunk ID = %q", first[0].ID)
	}
}

func TestChunkTablesAtomic(t *testing.T) {
	var rows []string
	for i := 0; i < 8; i++ {
		rows = append(rows, fmt.Sprintf("| sample-%d | value-%d |", i, i))
	}
	table := "| Name | Value |\n| --- | --- |\n" + strings.Join(rows, "\n")

	t.Run("fits under max size", func(t *testing.T) {
		c := New(10, 2, 100, wordEstimator{})
		chunks := c.Document(sampleDoc(table))

		var tableChunks []Chunk
		for _, ch := range chunks {
			if ch.Type == TypeTable || ch.Type == TypeTableFragment {
				tableChunks = append(tableChunks, ch)
			}
		}
		if len(tableChunks) != 1 || tableChunks[0].Type != TypeTable {
			t.Fatalf("expected one whole table chunk, got %+v", tableChunks)
		}
		if got := len(mdtable.Detect(tableChunks[0].Text)[0].Rows); got != 8 {
			t.Errorf("table chunk has %d rows, want 8", got)
		}
	})

	t.Run("oversized splits between rows", func(t *testing.T) {
		c := New(10, 2, 12, wordEstimator{})
		chunks := c.Document(sampleDoc(table))

		var fragments []Chunk
		for _, ch := range chunks {
			if ch.Type == TypeTableFragment {
				fragments = append(fragments, ch)
			}
		}
		if len(fragments) < 2 {
			t.Fatalf("expected multiple fragments, got %d", len(fragments))
		}

		totalRows := 0
		for _, f := range fragments {
			tables := mdtable.Detect(f.Text)
			if len(tables) != 1 {
				t.Fatalf("fragment is not a single table:\n%s", f.Text)
			}
			for _, row := range tables[0].Rows {
				// No split mid-row: every data row keeps both cells.
				if len(row) != 2 || row[0] == "" || row[1] == "" {
					t.Errorf("broken row %v in fragment:\n%s", row, f.Text)
				}
				totalRows++
			}
		}
		if totalRows != 8 {
			t.Errorf("fragments carry %d rows total, want 8", totalRows)
		}
	})
}

func TestChunkVariableGroups(t *testing.T) {
	var lines []string
	for i := 0; i < 6; i++ {
		lines = append(lines, fmt.Sprintf("Param%d: value number %d", i, i))
	}
	c := New(8, 2, 100, wordEstimator{})
	chunks := c.Document(sampleDoc(strings.Join(lines, "\n")))

	var groups []Chunk
	for _, ch := range chunks {
		if ch.Type == TypeVariableGroup {
			groups = append(groups, ch)
		}
	}
	if len(groups) < 2 {
		t.Fatalf("expected variables to batch into multiple groups, got %d", len(groups))
	}
	for _, g := range groups {
		for _, line := range strings.Split(g.Text, "\n") {
			if !strings.Contains(line, ": ") {
				t.Errorf("variable split across groups: %q", line)
			}
		}
	}
	// Original order preserved across groups.
	all := strings.Join([]string{groups[0].Text, groups[1].Text}, "\n")
	if strings.Index(all, "Param0") > strings.Index(all, "Param1") {
		t.Error("variable order not preserved")
	}
}

func TestSplitPlainTextHeaderBoundaries(t *testing.T) {
	text := strings.Join([]string{
		"# Introduction",
		"",
		"Short intro body.",
		"",
		"# Methods",
		"",
		"Short methods body.",
	}, "\n")
	c := New(6, 2, 100, wordEstimator{})
	segments := c.splitPlainText(text)

	if len(segments) != 2 {
		t.Fatalf("expected 2 header-bounded segments, got %d: %q", len(segments), segments)
	}
	if !strings.HasPrefix(strings.TrimSpace(segments[1]), "# Methods") {
		t.Errorf("second segment does not start at header: %q", segments[1])
	}
}

func TestSplitPlainTextPageBreaks(t *testing.T) {
	text := "--- Page 1 ---\nFirst page body text.\n--- Page 2 ---\nSecond page body text."
	c := New(100, 10, 200, wordEstimator{})
	segments := c.splitPlainText(text)

	if len(segments) != 2 {
		t.Fatalf("expected 2 page segments, got %d: %q", len(segments), segments)
	}
	if strings.Contains(segments[0], "--- Page") {
		t.Errorf("page marker leaked into chunk: %q", segments[0])
	}
}

func TestHardSplitKeepsRunesWhole(t *testing.T) {
	c := New(1, 0, 100, wordEstimator{})
	content := strings.Repeat("µ", 10)
	pieces := c.hardSplit(content)

	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces, got %q", pieces)
	}
	for i, p := range pieces {
		if !utf8.ValidString(p) {
			t.Errorf("piece %d is not valid UTF-8: %q", i, p)
		}
	}
	if strings.Join(pieces, "") != content {
		t.Errorf("pieces do not rejoin to the original: %q", pieces)
	}
}

func TestPackCarriesOneUnitOverlap(t *testing.T) {
	c := New(4, 2, 100, wordEstimator{})
	units := []string{"one two", "three four", "five six"}
	chunks := c.pack(units, "\n")

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %q", chunks)
	}
	if !strings.Contains(chunks[1], "three four") {
		t.Errorf("overlap unit not carried: %q", chunks[1])
	}
}
