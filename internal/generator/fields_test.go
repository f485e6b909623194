package generator

import (
	"testing"

	"github.com/AdeenoAi/fdabc/internal/template"
)

func TestFillFieldsColonAndIsPatterns(t *testing.T) {
	results := []Result{
		{Text: "Protocol summary. Dose Amount: 10 mg administered orally.\nDuration is 14 days for every cohort.", Score: 0.9},
	}
	fields := []template.Field{
		{Name: "dose_amount", Placeholder: "{dose_amount}"},
		{Name: "duration", Placeholder: "{duration}"},
		{Name: "absent_field", Placeholder: "{absent_field}"},
	}

	values := fillFields(fields, results)
	if got := values["dose_amount"]; got != "10 mg administered orally" {
		t.Errorf("dose_amount = %q", got)
	}
	if got := values["duration"]; got != "14 days for every cohort" {
		t.Errorf("duration = %q", got)
	}
	if _, ok := values["absent_field"]; ok {
		t.Error("absent_field resolved from nothing")
	}
}

func TestFillFieldsUnderscoreMatchesSpacedForm(t *testing.T) {
	results := []Result{
		{Text: "Sample size = 42 subjects per arm.", Score: 0.8},
	}
	values := fillFields([]template.Field{{Name: "sample_size"}}, results)
	if got := values["sample_size"]; got != "42 subjects per arm" {
		t.Errorf("sample_size = %q", got)
	}
}

func TestFillFieldsPrefersMentioningPassage(t *testing.T) {
	results := []Result{
		{Text: "General discussion with no field values at all.", Score: 0.95},
		{Text: "Batch Number: LOT-2291 recorded at receipt.", Score: 0.60},
	}
	values := fillFields([]template.Field{{Name: "batch_number"}}, results)
	if got := values["batch_number"]; got != "LOT-2291 recorded at receipt" {
		t.Errorf("batch_number = %q", got)
	}
}

func TestMatchFieldPatternsStopsAtTableCell(t *testing.T) {
	window := "| Dose: 5 mg | other cell |"
	if got := matchFieldPatterns("dose", window); got != "5 mg" {
		t.Errorf("value = %q, want %q", got, "5 mg")
	}
}
