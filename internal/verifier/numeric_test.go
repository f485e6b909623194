package verifier

import (
	"strings"
	"testing"
)

func TestPrecisionFlagsRoundLargeValues(t *testing.T) {
	claims := []Claim{
		{Text: "Total dose was 500 mg over the study.", Type: ClaimNumeric},
		{Text: "Measured response was 137 units.", Type: ClaimNumeric},
	}
	findings := precisionFindings(claims)
	if len(findings) != 1 {
		t.Fatalf("findings = %+v", findings)
	}
	if findings[0].Confidence != roundValueConfidence || !strings.Contains(findings[0].Reason, "500") {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestPrecisionIgnoresSmallRoundValues(t *testing.T) {
	claims := []Claim{{Text: "Dose was 10 mg daily.", Type: ClaimNumeric}}
	if findings := precisionFindings(claims); len(findings) != 0 {
		t.Errorf("small value flagged: %+v", findings)
	}
}

func TestPrecisionFlagsMixedMassUnits(t *testing.T) {
	claims := []Claim{
		{Text: "Dose: 12 mg", Type: ClaimTableCell},
		{Text: "Impurity limit was 50 µg per dose.", Type: ClaimNumeric},
	}
	findings := precisionFindings(claims)
	found := false
	for _, f := range findings {
		if f.Confidence == mixedUnitConfidence && strings.Contains(f.Reason, "mixed mass units") {
			found = true
		}
	}
	if !found {
		t.Errorf("mixed units not flagged: %+v", findings)
	}
}

func TestPrecisionMixedUnitReasonSorted(t *testing.T) {
	claims := []Claim{
		{Text: "Carrier dose was 3 ng per vial.", Type: ClaimNumeric},
		{Text: "Impurity limit was 50 µg per dose.", Type: ClaimNumeric},
		{Text: "Dose: 12 mg", Type: ClaimTableCell},
	}
	findings := precisionFindings(claims)
	if len(findings) != 1 {
		t.Fatalf("findings = %+v", findings)
	}
	// Unit list is sorted so the report text is stable across runs.
	if !strings.Contains(findings[0].Reason, "(mg, ng, µg)") {
		t.Errorf("reason = %q", findings[0].Reason)
	}
}

func TestPrecisionIgnoresFactualClaims(t *testing.T) {
	claims := []Claim{{Text: "The batch of 1000 vials was shipped.", Type: ClaimFactual}}
	if findings := precisionFindings(claims); len(findings) != 0 {
		t.Errorf("factual claim entered the numeric pass: %+v", findings)
	}
}
