package chunker

// Estimator measures text length in tokens. The chunker never assumes a
// particular tokenizer; an exact implementation can be swapped in without
// touching the splitting logic.
type Estimator interface {
	Estimate(text string) int
}

// HeuristicEstimator approximates token count as character count divided by
// four, the usual ballpark for English text. It is the process-wide default
// when no exact tokenizer is configured.
type HeuristicEstimator struct{}

func (HeuristicEstimator) Estimate(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}
