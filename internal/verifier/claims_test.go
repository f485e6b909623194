package verifier

import "testing"

func TestExtractClaimsCascade(t *testing.T) {
	text := "# Results\n" +
		"\n" +
		"| Arm | Dose |\n" +
		"|-----|------|\n" +
		"| A | 10 mg |\n" +
		"\n" +
		"Total exposure was 140 mg over two weeks.\n" +
		"Batch Number: LOT-2291\n" +
		"The cohort was monitored daily by the site staff. Short note.\n"

	claims := ExtractClaims(text)

	byType := make(map[ClaimType][]Claim)
	for _, c := range claims {
		byType[c.Type] = append(byType[c.Type], c)
	}

	cells := byType[ClaimTableCell]
	if len(cells) != 1 {
		t.Fatalf("table-cell claims = %d, want 1: %+v", len(cells), cells)
	}
	if cells[0].Text != "Dose: 10 mg" {
		t.Errorf("cell claim text = %q", cells[0].Text)
	}
	if loc := cells[0].Location; loc.TableIndex != 0 || loc.RowIndex != 0 || loc.ColIndex != 1 {
		t.Errorf("cell coordinates = %+v", loc)
	}

	numeric := byType[ClaimNumeric]
	if len(numeric) != 1 || numeric[0].Text != "Total exposure was 140 mg over two weeks." {
		t.Errorf("numeric claims = %+v", numeric)
	}

	kv := byType[ClaimKeyValue]
	if len(kv) != 1 || kv[0].Text != "Batch Number: LOT-2291" {
		t.Errorf("key-value claims = %+v", kv)
	}

	factual := byType[ClaimFactual]
	if len(factual) != 1 || factual[0].Text != "The cohort was monitored daily by the site staff." {
		t.Errorf("factual claims = %+v", factual)
	}
}

func TestExtractClaimsSkipsConsumedTableLines(t *testing.T) {
	text := "| Param | Value |\n|-------|-------|\n| Dose | 10 mg |\n"
	claims := ExtractClaims(text)
	for _, c := range claims {
		if c.Type != ClaimTableCell {
			t.Errorf("table line produced a %s claim: %+v", c.Type, c)
		}
	}
}

func TestExtractClaimsIndexesSequentially(t *testing.T) {
	text := "Dose was 10 mg daily.\nWeight was 70 kg at baseline.\n"
	claims := ExtractClaims(text)
	if len(claims) < 2 {
		t.Fatalf("claims = %+v", claims)
	}
	for i, c := range claims {
		if c.Index != i {
			t.Errorf("claim %d has index %d", i, c.Index)
		}
	}
}

func TestExtractClaimsShortSentencesIgnored(t *testing.T) {
	claims := ExtractClaims("It is ok.\n")
	if len(claims) != 0 {
		t.Errorf("short sentence produced claims: %+v", claims)
	}
}

func TestExtractClaimsCharSpans(t *testing.T) {
	text := "Intro line without facts here, plain words only.\nDose was 10 mg daily.\n"
	claims := ExtractClaims(text)
	var numeric *Claim
	for i := range claims {
		if claims[i].Type == ClaimNumeric {
			numeric = &claims[i]
		}
	}
	if numeric == nil {
		t.Fatalf("no numeric claim: %+v", claims)
	}
	if got := text[numeric.Location.CharStart:numeric.Location.CharEnd]; got != "10 mg" {
		t.Errorf("span = %q, want %q", got, "10 mg")
	}
	if numeric.Location.Line != 1 {
		t.Errorf("line = %d, want 1", numeric.Location.Line)
	}
}
