package verifier

import (
	"fmt"
	"strings"
)

const (
	maxReportedAreas = 10
	maxReasonLen     = 80
	lowAreaWarnAt    = 5
)

func buildWarnings(r *Result) []string {
	var warnings []string
	if r.Degraded {
		warnings = append(warnings, "verification backend unavailable for some claims, default confidence applied")
	}
	if len(r.LowConfidenceAreas) > lowAreaWarnAt {
		warnings = append(warnings, fmt.Sprintf("%d low-confidence areas found, generated content needs review", len(r.LowConfidenceAreas)))
	}
	if len(r.MissingFields) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d required template field(s) not covered by any claim", len(r.MissingFields)))
	}
	return warnings
}

func buildRecommendations(r *Result) []string {
	var recs []string
	if !r.Verified {
		recs = append(recs, "overall confidence is below the verification threshold, regenerate with more source documents indexed")
	}
	for _, area := range r.LowConfidenceAreas {
		if area.Location.TableIndex >= 0 {
			recs = append(recs, "review table values against the source documents, tabular numbers are penalized when weakly supported")
			break
		}
	}
	if len(r.MissingFields) > 0 {
		recs = append(recs, "add source material covering: "+strings.Join(r.MissingFields, ", "))
	}
	return recs
}

// renderReport produces the human-readable summary: confidence band, the
// low-confidence areas capped at ten with truncated reasons, and missing
// fields.
func renderReport(r *Result, sectionName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Verification report for %q\n", sectionName)
	fmt.Fprintf(&b, "Overall confidence: %.2f (%s), verified: %v\n", r.Confidence, confidenceBand(r.Confidence), r.Verified)
	fmt.Fprintf(&b, "Claims: %d total, %d high, %d medium, %d low\n",
		r.Breakdown.Total, r.Breakdown.High, r.Breakdown.Medium, r.Breakdown.Low)

	if len(r.LowConfidenceAreas) > 0 {
		b.WriteString("\nLow-confidence areas:\n")
		shown := r.LowConfidenceAreas
		if len(shown) > maxReportedAreas {
			shown = shown[:maxReportedAreas]
		}
		for _, area := range shown {
			fmt.Fprintf(&b, "  - %.2f %s\n", area.Confidence, truncate(firstNonEmpty(area.Reason, area.Claim), maxReasonLen))
		}
		if len(r.LowConfidenceAreas) > maxReportedAreas {
			fmt.Fprintf(&b, "  ... and %d more\n", len(r.LowConfidenceAreas)-maxReportedAreas)
		}
	}

	if len(r.MissingFields) > 0 {
		b.WriteString("\nMissing fields: " + strings.Join(r.MissingFields, ", ") + "\n")
	}
	for _, w := range r.Warnings {
		b.WriteString("\nWarning: " + w)
	}
	return strings.TrimRight(b.String(), "\n")
}

func confidenceBand(conf float64) string {
	switch {
	case conf >= highBucketMin:
		return "high"
	case conf >= mediumBucketMin:
		return "medium"
	default:
		return "low"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
