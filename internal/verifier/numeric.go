package verifier

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Confidence assigned to the two numeric-precision findings. Both land in the
// low bucket, so each folds into the aggregate at low weight.
const (
	roundValueConfidence = 0.4
	mixedUnitConfidence  = 0.5
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// massUnits maps each recognized mass-unit spelling to its canonical family
// member, so "ug" and "µg" count as the same unit.
var massUnits = map[string]string{
	"mg": "mg", "µg": "µg", "ug": "µg", "ng": "ng",
}

// precisionFinding is one numeric-precision flag, reported like a
// low-confidence claim and included in the aggregate.
type precisionFinding struct {
	Claim      Claim
	Confidence float64
	Reason     string
}

// precisionFindings runs the secondary numeric pass over numeric and
// table-cell claims: large suspiciously round values, and mixed mass units
// across the section.
func precisionFindings(claims []Claim) []precisionFinding {
	var findings []precisionFinding
	unitsSeen := make(map[string]bool)

	for _, c := range claims {
		if c.Type != ClaimNumeric && c.Type != ClaimTableCell {
			continue
		}
		lower := strings.ToLower(c.Text)
		for spelling, canonical := range massUnits {
			if containsUnit(lower, spelling) {
				unitsSeen[canonical] = true
			}
		}
		for _, numText := range numberPattern.FindAllString(c.Text, -1) {
			n, err := strconv.ParseFloat(numText, 64)
			if err != nil {
				continue
			}
			if n > 100 && n == float64(int64(n)) && int64(n)%5 == 0 {
				findings = append(findings, precisionFinding{
					Claim:      c,
					Confidence: roundValueConfidence,
					Reason:     fmt.Sprintf("suspiciously round value %s, may be an approximation", numText),
				})
				break
			}
		}
	}

	if len(unitsSeen) > 1 {
		units := make([]string, 0, len(unitsSeen))
		for u := range unitsSeen {
			units = append(units, u)
		}
		sort.Strings(units)
		findings = append(findings, precisionFinding{
			Confidence: mixedUnitConfidence,
			Reason:     fmt.Sprintf("mixed mass units in one section (%s), check for conversion errors", strings.Join(units, ", ")),
		})
	}
	return findings
}

// containsUnit looks for a digit followed by the unit, so "mg" inside an
// ordinary word does not count.
func containsUnit(text, unit string) bool {
	idx := 0
	for {
		at := strings.Index(text[idx:], unit)
		if at < 0 {
			return false
		}
		at += idx
		before := strings.TrimRight(text[:at], " ")
		if len(before) > 0 && before[len(before)-1] >= '0' && before[len(before)-1] <= '9' {
			after := at + len(unit)
			if after >= len(text) || !isLetter(text[after]) {
				return true
			}
		}
		idx = at + len(unit)
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
