package verifier

// Bucket boundaries and the default bucket weights. The weights and the
// verified threshold are policy knobs, overridable through configuration.
const (
	highBucketMin   = 0.8
	mediumBucketMin = 0.5

	DefaultThreshold = 0.7
)

// Weights are the per-bucket contributions to the aggregate confidence.
type Weights struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultWeights reproduce the fixed aggregation policy: each claim
// contributes its bucket's weight, and the sum is divided by the claim count.
var DefaultWeights = Weights{High: 1.0, Medium: 0.65, Low: 0.3}

func (w Weights) forConfidence(conf float64) float64 {
	switch {
	case conf >= highBucketMin:
		return w.High
	case conf >= mediumBucketMin:
		return w.Medium
	default:
		return w.Low
	}
}

// AggregateConfidence buckets each confidence and returns the mean bucket
// weight. No claims means nothing to check either way, so the result is a
// neutral 0.5.
func AggregateConfidence(confidences []float64, w Weights) float64 {
	if len(confidences) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, c := range confidences {
		sum += w.forConfidence(c)
	}
	return sum / float64(len(confidences))
}

// countBuckets tallies the per-bucket breakdown for reporting.
func countBuckets(confidences []float64) Breakdown {
	b := Breakdown{Total: len(confidences)}
	for _, c := range confidences {
		switch {
		case c >= highBucketMin:
			b.High++
		case c >= mediumBucketMin:
			b.Medium++
		default:
			b.Low++
		}
	}
	return b
}
