package verifier

import (
	"regexp"
	"strings"

	"github.com/AdeenoAi/fdabc/internal/mdtable"
)

// factualMinLen is the minimum sentence length for a factual-statement claim.
const factualMinLen = 20

var (
	// Unit-bearing numeric value, the numeric-data claim trigger.
	unitPattern = regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:%|(?:°c|°f|mg|µg|ug|ng|kg|ml|mm|cm|ppm|mmol|iu|hours?|hrs?|days?|minutes?|seconds?|g|l|m)\b)`)

	// Capitalized key followed by a colon and a value.
	keyValuePattern = regexp.MustCompile(`^\s*([A-Z][^:\n]{0,60}):\s+(\S.*)$`)

	// Verb cues that mark a sentence as a checkable factual assertion.
	verbCuePattern = regexp.MustCompile(`(?i)\b(is|are|was|were|contains?|contained|measured|found|show(s|ed)?|indicat(es|ed)|demonstrat(es|ed)|increas(es|ed)|decreas(es|ed)|result(s|ed)?)\b`)
)

// ExtractClaims decomposes generated text into typed claims in cascade order:
// table cells first (consuming their lines), then unit-bearing numeric lines,
// then capitalized key/value lines, then factual sentences from whatever
// prose remains. Each claim carries a character span for highlighting.
func ExtractClaims(text string) []Claim {
	lines := strings.Split(text, "\n")
	offsets := lineOffsets(lines)
	consumed := make([]bool, len(lines))

	var claims []Claim
	add := func(c Claim) {
		c.Index = len(claims)
		claims = append(claims, c)
	}

	for ti, table := range mdtable.Detect(text) {
		for i := table.StartLine; i <= table.EndLine && i < len(lines); i++ {
			consumed[i] = true
		}
		for ri, row := range table.Rows {
			lineIdx := -1
			if ri < len(table.RowLines) {
				lineIdx = table.RowLines[ri]
			}
			for ci, cell := range row {
				if !strings.ContainsAny(cell, "0123456789") {
					continue
				}
				claimText := cell
				if ci < len(table.Headers) && table.Headers[ci] != "" {
					claimText = table.Headers[ci] + ": " + cell
				}
				loc := tableLocation(lines, offsets, lineIdx, cell, ti, ri, ci)
				add(Claim{Text: claimText, Type: ClaimTableCell, Location: loc})
			}
		}
	}

	for i, line := range lines {
		if consumed[i] || strings.TrimSpace(line) == "" {
			continue
		}
		if m := unitPattern.FindStringIndex(line); m != nil {
			add(Claim{
				Text: strings.TrimSpace(line),
				Type: ClaimNumeric,
				Location: Location{
					Line: i, CharStart: offsets[i] + m[0], CharEnd: offsets[i] + m[1],
					TableIndex: -1, RowIndex: -1, ColIndex: -1,
				},
			})
			consumed[i] = true
		}
	}

	for i, line := range lines {
		if consumed[i] {
			continue
		}
		if keyValuePattern.MatchString(line) && !mdtable.IsRow(line) {
			add(Claim{
				Text: strings.TrimSpace(line),
				Type: ClaimKeyValue,
				Location: Location{
					Line: i, CharStart: offsets[i], CharEnd: offsets[i] + len(line),
					TableIndex: -1, RowIndex: -1, ColIndex: -1,
				},
			})
			consumed[i] = true
		}
	}

	for i, line := range lines {
		if consumed[i] || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		pos := 0
		for _, sentence := range splitSentences(line) {
			start := strings.Index(line[pos:], sentence)
			if start < 0 {
				continue
			}
			start += pos
			pos = start + len(sentence)
			trimmed := strings.TrimSpace(sentence)
			if len(trimmed) < factualMinLen || !verbCuePattern.MatchString(trimmed) {
				continue
			}
			add(Claim{
				Text: trimmed,
				Type: ClaimFactual,
				Location: Location{
					Line: i, CharStart: offsets[i] + start, CharEnd: offsets[i] + start + len(sentence),
					TableIndex: -1, RowIndex: -1, ColIndex: -1,
				},
			})
		}
	}

	return claims
}

func tableLocation(lines []string, offsets []int, lineIdx int, cell string, ti, ri, ci int) Location {
	loc := Location{Line: lineIdx, TableIndex: ti, RowIndex: ri, ColIndex: ci, CharStart: -1, CharEnd: -1}
	if lineIdx >= 0 && lineIdx < len(lines) {
		if at := strings.Index(lines[lineIdx], cell); at >= 0 {
			loc.CharStart = offsets[lineIdx] + at
			loc.CharEnd = loc.CharStart + len(cell)
		}
	}
	return loc
}

func lineOffsets(lines []string) []int {
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}
	return offsets
}

func splitSentences(line string) []string {
	var sentences []string
	rest := line
	for {
		idx := strings.Index(rest, ". ")
		if idx < 0 {
			if strings.TrimSpace(rest) != "" {
				sentences = append(sentences, rest)
			}
			return sentences
		}
		sentences = append(sentences, rest[:idx+1])
		rest = rest[idx+2:]
	}
}
