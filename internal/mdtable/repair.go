package mdtable

import "unicode"

// IsMalformed reports whether a table shows the cell-boundary mis-detection
// symptom: more than five cells total and over half of the non-separator
// cells being single alphanumeric characters ("D","o","s","e" instead of
// "Dose").
func IsMalformed(t Table) bool {
	total := 0
	single := 0
	count := func(cells []string) {
		for _, c := range cells {
			if c == "" {
				continue
			}
			total++
			if isSingleAlnum(c) {
				single++
			}
		}
	}
	count(t.Headers)
	for _, row := range t.Rows {
		count(row)
	}
	return total > 5 && float64(single) > float64(total)*0.5
}

func isSingleAlnum(s string) bool {
	runes := []rune(s)
	if len(runes) != 1 {
		return false
	}
	return unicode.IsLetter(runes[0]) || unicode.IsDigit(runes[0])
}

// Repair merges runs of consecutive single-character cells back into words,
// leaving multi-character cells alone, and rebuilds the separator row to the
// merged header's column count. The second return value is false when the
// repaired table has no usable rows and should be dropped.
func Repair(t Table) (Table, bool) {
	repaired := Table{
		StartLine: t.StartLine,
		EndLine:   t.EndLine,
		Headers:   MergeCells(t.Headers),
	}
	for i, row := range t.Rows {
		merged := MergeCells(row)
		if len(merged) == 0 {
			continue
		}
		repaired.Rows = append(repaired.Rows, merged)
		if i < len(t.RowLines) {
			repaired.RowLines = append(repaired.RowLines, t.RowLines[i])
		}
	}
	if len(repaired.Headers) == 0 || len(repaired.Rows) == 0 {
		return repaired, false
	}
	repaired.Lines = append([]string{}, splitRendered(repaired)...)
	return repaired, true
}

// MergeCells collapses consecutive single alphanumeric cells into one word.
// "D","o","s","e","Response" becomes "Dose","Response". An uppercase cell
// after accumulated lowercase starts a new word, so "D","o","s","e","R","e",
// "s" yields "Dose","Res" rather than one run-on cell.
func MergeCells(cells []string) []string {
	var out []string
	var word string
	flush := func() {
		if word != "" {
			out = append(out, word)
			word = ""
		}
	}
	for _, c := range cells {
		if c == "" {
			continue
		}
		if isSingleAlnum(c) {
			if unicode.IsUpper([]rune(c)[0]) && endsLower(word) {
				flush()
			}
			word += c
			continue
		}
		flush()
		out = append(out, c)
	}
	flush()
	return out
}

func endsLower(word string) bool {
	runes := []rune(word)
	return len(runes) > 0 && unicode.IsLower(runes[len(runes)-1])
}

func splitRendered(t Table) []string {
	rendered := t.Render()
	var lines []string
	start := 0
	for i := 0; i < len(rendered); i++ {
		if rendered[i] == '\n' {
			lines = append(lines, rendered[start:i])
			start = i + 1
		}
	}
	lines = append(lines, rendered[start:])
	return lines
}
