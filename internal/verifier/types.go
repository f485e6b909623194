// Package verifier decomposes generated text into typed claims, re-retrieves
// evidence for each one, and scores how traceable the text is to the indexed
// corpus. Its output is advisory; it never blocks delivery of generated
// content.
package verifier

// ClaimType classifies an extracted claim.
type ClaimType string

const (
	ClaimTableCell ClaimType = "table-cell"
	ClaimNumeric   ClaimType = "numeric-data"
	ClaimKeyValue  ClaimType = "key-value"
	ClaimFactual   ClaimType = "factual-statement"
)

// Location is the character span of a claim in the generated text. Table
// coordinates are -1 for non-table claims.
type Location struct {
	Line       int `json:"line"`
	CharStart  int `json:"char_start"`
	CharEnd    int `json:"char_end"`
	TableIndex int `json:"table_index"`
	RowIndex   int `json:"row_index"`
	ColIndex   int `json:"col_index"`
}

// Claim is one independently verifiable assertion. Claims are derived from
// the text on every pass, never stored.
type Claim struct {
	Text     string    `json:"text"`
	Type     ClaimType `json:"type"`
	Index    int       `json:"index"`
	Location Location  `json:"location"`
}

// ClaimResult is the verification outcome for one claim.
type ClaimResult struct {
	Claim          Claim   `json:"claim"`
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
}

// Breakdown counts claims per confidence bucket.
type Breakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// LowConfidenceArea flags one weakly supported claim for review.
type LowConfidenceArea struct {
	Claim      string   `json:"claim"`
	Confidence float64  `json:"confidence"`
	Reason     string   `json:"reason"`
	Location   Location `json:"location"`
}

// Result is the full verification outcome for one section.
type Result struct {
	Verified           bool                `json:"verified"`
	Confidence         float64             `json:"confidence"`
	Breakdown          Breakdown           `json:"confidence_breakdown"`
	Claims             []ClaimResult       `json:"claims"`
	LowConfidenceAreas []LowConfidenceArea `json:"low_confidence_areas"`
	MissingFields      []string            `json:"missing_fields"`
	Warnings           []string            `json:"warnings"`
	Recommendations    []string            `json:"recommendations"`
	Report             string              `json:"report"`
	Degraded           bool                `json:"degraded"`
}
