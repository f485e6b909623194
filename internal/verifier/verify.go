package verifier

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/AdeenoAi/fdabc/internal/contextutil"
	"github.com/AdeenoAi/fdabc/internal/template"
	"github.com/AdeenoAi/fdabc/internal/vectorstore"
)

// Default confidences per classification, and the table-cell penalty. Tabular
// numeric accuracy is safety-critical for this domain, so weakly supported
// table cells are pushed down further, floored at the NOT_FOUND level.
const (
	confidenceSupported = 0.9
	confidencePartial   = 0.6
	confidenceNotFound  = 0.2

	tableCellPenaltyBelow = 0.7
	tableCellPenalty      = 0.2
	tableCellFloor        = 0.2

	// Confidence assumed when the verification backends are unreachable.
	degradedConfidence = 0.75

	verifyPassages = 3
)

var explicitConfidencePattern = regexp.MustCompile(`(?i)confidence[:\s]+([01](?:\.\d+)?)`)

// Completer classifies a claim against evidence passages.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder generates embeddings for texts.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Verifier checks generated text against the indexed corpus.
type Verifier struct {
	store       vectorstore.VectorStore
	embedder    Embedder
	completer   Completer
	collection  string
	weights     Weights
	threshold   float64
	concurrency int
}

// New creates a verifier. Zero-valued weights, threshold, or concurrency fall
// back to the defaults (1.0/0.65/0.3, 0.7, 4).
func New(store vectorstore.VectorStore, embedder Embedder, completer Completer, collection string, weights Weights, threshold float64, concurrency int) *Verifier {
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Verifier{
		store:       store,
		embedder:    embedder,
		completer:   completer,
		collection:  collection,
		weights:     weights,
		threshold:   threshold,
		concurrency: concurrency,
	}
}

// Verify decomposes the generated text into claims, checks each one against
// the corpus, and aggregates the outcome. Backend failures on individual
// claims degrade those claims to a fixed default confidence with a warning;
// Verify itself never fails.
func (v *Verifier) Verify(ctx context.Context, generatedText, sectionName string, structure *template.Structure, topK int) *Result {
	logger := contextutil.LoggerFromContext(ctx)
	if topK <= 0 {
		topK = verifyPassages
	}

	claims := ExtractClaims(generatedText)
	result := &Result{}
	if len(claims) == 0 {
		result.Confidence = AggregateConfidence(nil, v.weights)
		result.Verified = result.Confidence >= v.threshold
		result.MissingFields = missingFields(structure, sectionName, nil)
		result.Warnings = append(result.Warnings, "no verifiable claims found in generated text")
		result.Report = renderReport(result, sectionName)
		return result
	}

	claimResults := make([]ClaimResult, len(claims))
	var degraded sync.Once

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, claim := range claims {
		g.Go(func() error {
			cr, err := v.verifyClaim(gctx, claim, topK)
			if err != nil {
				logger.WarnContext(gctx, "claim verification unavailable",
					"section", sectionName, "claim_index", claim.Index, "error", err)
				degraded.Do(func() { result.Degraded = true })
				cr = ClaimResult{
					Claim:          claim,
					Classification: "UNAVAILABLE",
					Confidence:     degradedConfidence,
					Reason:         "verification backend unavailable",
				}
			}
			claimResults[i] = cr
			return nil
		})
	}
	// Workers only report success; the group is used for bounded concurrency.
	_ = g.Wait()

	result.Claims = claimResults

	confidences := make([]float64, 0, len(claimResults))
	for _, cr := range claimResults {
		confidences = append(confidences, cr.Confidence)
		if cr.Confidence < mediumBucketMin {
			result.LowConfidenceAreas = append(result.LowConfidenceAreas, LowConfidenceArea{
				Claim:      cr.Claim.Text,
				Confidence: cr.Confidence,
				Reason:     cr.Reason,
				Location:   cr.Claim.Location,
			})
		}
	}

	for _, f := range precisionFindings(claims) {
		confidences = append(confidences, f.Confidence)
		result.LowConfidenceAreas = append(result.LowConfidenceAreas, LowConfidenceArea{
			Claim:      f.Claim.Text,
			Confidence: f.Confidence,
			Reason:     f.Reason,
			Location:   f.Claim.Location,
		})
	}

	result.Confidence = AggregateConfidence(confidences, v.weights)
	result.Breakdown = countBuckets(confidences)
	result.Verified = result.Confidence >= v.threshold
	result.MissingFields = missingFields(structure, sectionName, claims)
	result.Warnings = append(result.Warnings, buildWarnings(result)...)
	result.Recommendations = buildRecommendations(result)
	result.Report = renderReport(result, sectionName)
	return result
}

// verifyClaim retrieves evidence for one claim and asks the completion
// service to classify it.
func (v *Verifier) verifyClaim(ctx context.Context, claim Claim, topK int) (ClaimResult, error) {
	vecs, err := v.embedder.EmbedTexts(ctx, []string{claim.Text})
	if err != nil {
		return ClaimResult{}, fmt.Errorf("embed claim: %w", err)
	}
	hits, err := v.store.Search(ctx, v.collection, vecs[0], topK, nil)
	if err != nil {
		return ClaimResult{}, fmt.Errorf("search evidence: %w", err)
	}

	var passages []string
	for _, h := range hits {
		if text, _ := h.Meta["text"].(string); text != "" {
			passages = append(passages, text)
		}
	}

	reply, err := v.completer.Complete(ctx, claimPrompt(claim, passages))
	if err != nil {
		return ClaimResult{}, fmt.Errorf("classify claim: %w", err)
	}

	classification, confidence := parseClassification(reply)
	if claim.Type == ClaimTableCell && confidence < tableCellPenaltyBelow {
		confidence -= tableCellPenalty
		if confidence < tableCellFloor {
			confidence = tableCellFloor
		}
	}
	return ClaimResult{
		Claim:          claim,
		Classification: classification,
		Confidence:     confidence,
		Reason:         firstLine(reply),
	}, nil
}

func claimPrompt(claim Claim, passages []string) string {
	var b strings.Builder
	b.WriteString("Classify whether the claim is supported by the source passages.\n")
	b.WriteString("Answer with exactly one of SUPPORTED, PARTIAL, NOT_FOUND, then a short reason.\n")
	b.WriteString("Optionally state a confidence between 0 and 1 as \"confidence: X\".\n\n")
	fmt.Fprintf(&b, "Claim (%s): %s\n\nSource passages:\n", claim.Type, claim.Text)
	if len(passages) == 0 {
		b.WriteString("(none retrieved)\n")
	}
	for i, p := range passages {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, p)
	}
	return b.String()
}

// parseClassification maps the model's answer to a default confidence, then
// lets an explicitly stated numeric confidence override it. Unrecognized
// answers count as NOT_FOUND.
func parseClassification(reply string) (string, float64) {
	upper := strings.ToUpper(reply)
	classification := "NOT_FOUND"
	confidence := confidenceNotFound
	switch {
	case strings.Contains(upper, "NOT_FOUND") || strings.Contains(upper, "NOT FOUND"):
	case strings.Contains(upper, "PARTIAL"):
		classification, confidence = "PARTIAL", confidencePartial
	case strings.Contains(upper, "SUPPORTED"):
		classification, confidence = "SUPPORTED", confidenceSupported
	}
	if m := explicitConfidencePattern.FindStringSubmatch(reply); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= 0 && v <= 1 {
			confidence = v
		}
	}
	return classification, confidence
}

// missingFields returns template-required field names whose name appears in
// no claim text, case-insensitive.
func missingFields(structure *template.Structure, sectionName string, claims []Claim) []string {
	if structure == nil {
		return nil
	}
	var missing []string
	for _, field := range structure.RequiredFields(sectionName) {
		needle := strings.ToLower(strings.ReplaceAll(field, "_", " "))
		raw := strings.ToLower(field)
		found := false
		for _, c := range claims {
			textLower := strings.ToLower(c.Text)
			if strings.Contains(textLower, needle) || strings.Contains(textLower, raw) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, field)
		}
	}
	return missing
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
