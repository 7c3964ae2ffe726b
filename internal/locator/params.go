package locator

import "slices"

// DefaultParams returns the locator parameters tuned for the stock puzzle theme.
func DefaultParams() Params {
	return Params{
		// Screenshots are downscaled to at most this width before scanning
		MaxWidth: 540,

		// Candidate board sides as fractions of the shorter image dimension
		SideFractions:   []float64{0.35, 0.5, 0.65, 0.8},
		MinSideFraction: 0.25,
		MaxSideFraction: 0.9,

		// Coarse scan step: width/StepDivisor, never below MinStep
		StepDivisor: 60,
		MinStep:     8,

		// Empirical; a uniform screen scores 0, a clean 8x8 grid scores well above 1
		ScoreThreshold: 0.2,
	}
}

// WithScoreThreshold returns a copy of params with a different acceptance threshold.
// Dark themes with low-contrast grid lines need a lower value.
func (p Params) WithScoreThreshold(threshold float64) Params {
	p.ScoreThreshold = threshold
	return p
}

// WithMaxWidth returns a copy of params with a different downscale cap.
func (p Params) WithMaxWidth(width int) Params {
	p.MaxWidth = width
	return p
}

// WithSideFractions returns a copy of params scanning the given side fractions.
func (p Params) WithSideFractions(fractions ...float64) Params {
	p.SideFractions = append([]float64(nil), fractions...)
	return p
}

// step returns the scan step for a downscaled image of the given width.
func (p Params) step(width int) int {
	div := p.StepDivisor
	if div <= 0 {
		div = 60
	}
	return max(p.MinStep, width/div, 1)
}

// sides returns the candidate window sides for a w x h image, filtered to
// the plausible range and sorted ascending.
func (p Params) sides(w, h int) []int {
	short := min(w, h)
	lo := int(float64(short) * p.MinSideFraction)
	hi := int(float64(short) * p.MaxSideFraction)

	var out []int
	for _, f := range p.SideFractions {
		s := int(float64(short) * f)
		if s >= lo && s <= hi && s > 0 {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}
