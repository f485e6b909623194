// Package mdtable detects, normalizes, and repairs markdown-shaped tables in
// free text. The generation and verification paths share this package so that
// "what counts as a table" is decided by exactly one rule.
//
// goldmark's table extension only accepts well-formed GFM tables; this package
// has to find tables that LLM output almost produced, keep their line numbers,
// and fix them, which is why detection is line-oriented.
package mdtable

import (
	"regexp"
	"strings"
)

// Table is a pipe-delimited table found in text, with its line span preserved
// so callers can cut or replace it in place.
type Table struct {
	StartLine int // index of the first table line in the scanned text
	EndLine   int // index of the last table line (inclusive)
	Lines     []string
	Headers   []string
	Rows      [][]string
	RowLines  []int // text line index per data row, parallel to Rows
}

var separatorPattern = regexp.MustCompile(`^\|[\s\-:|]+\|$`)

// IsRow reports whether a line looks like a table row: trimmed, it must start
// and end with a pipe.
func IsRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.Contains(trimmed, "|") &&
		strings.HasPrefix(trimmed, "|") &&
		strings.HasSuffix(trimmed, "|")
}

// IsSeparator reports whether a line is a header/body separator row.
func IsSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if separatorPattern.MatchString(trimmed) {
		return true
	}
	return IsRow(line) && strings.Contains(trimmed, "---")
}

// SplitCells splits a table row into trimmed cell values, dropping the empty
// leading/trailing cells produced by the outer pipes.
func SplitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// Detect scans text line by line and returns every contiguous run of table
// rows as a Table. Runs without a recognizable header still come back as
// tables; the first non-separator row is treated as the header.
func Detect(text string) []Table {
	lines := strings.Split(text, "\n")
	var tables []Table

	i := 0
	for i < len(lines) {
		if !IsRow(lines[i]) {
			i++
			continue
		}
		start := i
		for i < len(lines) && IsRow(lines[i]) {
			i++
		}
		tables = append(tables, buildTable(lines, start, i-1))
	}
	return tables
}

func buildTable(lines []string, start, end int) Table {
	t := Table{StartLine: start, EndLine: end}
	for j := start; j <= end; j++ {
		t.Lines = append(t.Lines, lines[j])
		if IsSeparator(lines[j]) {
			continue
		}
		cells := SplitCells(lines[j])
		if t.Headers == nil {
			t.Headers = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
		t.RowLines = append(t.RowLines, j)
	}
	return t
}

// Render writes the table back as normalized markdown: header, a separator
// sized to the header's column count, then the data rows.
func (t Table) Render() string {
	var b strings.Builder
	writeRow(&b, t.Headers)
	b.WriteString("\n")
	b.WriteString(separatorFor(len(t.Headers)))
	for _, row := range t.Rows {
		b.WriteString("\n")
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
}

func separatorFor(cols int) string {
	var b strings.Builder
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		b.WriteString(" --- |")
	}
	return b.String()
}
