// Package cost converts token usage into dollar estimates.
package cost

// Rates holds per-token prices in USD.
type Rates struct {
	Input  float64
	Output float64
}

// DefaultRates is the MiniMax-M2 price list: $0.3 per million input
// tokens, $1.2 per million output tokens.
var DefaultRates = Rates{
	Input:  0.3 / 1_000_000,
	Output: 1.2 / 1_000_000,
}

// Breakdown is the result of a cost calculation.
type Breakdown struct {
	Input  float64
	Output float64
	Total  float64
}

// Calc prices a run from its token counters. Negative counters are
// treated as zero rather than producing negative cost.
func Calc(rates Rates, promptTokens, completionTokens int) Breakdown {
	if promptTokens < 0 {
		promptTokens = 0
	}
	if completionTokens < 0 {
		completionTokens = 0
	}

	in := float64(promptTokens) * rates.Input
	out := float64(completionTokens) * rates.Output
	return Breakdown{
		Input:  in,
		Output: out,
		Total:  in + out,
	}
}
