package pricing

import "math"

// SpreadFunc returns the signed fractional adjustment to the market rate for an amount.
// Negative is better than market.
type SpreadFunc func(amount float64) float64

// FeeFunc returns the fee, in units of the source currency, before discounts.
type FeeFunc func(amount float64) float64

// Model is a provider's pricing: both functions are pure in the amount.
type Model struct {
	Spread SpreadFunc
	Fee    FeeFunc
}

func FlatSpread(s float64) SpreadFunc {
	return func(float64) float64 { return s }
}

// TieredSpread applies Above to amounts strictly greater than Threshold.
type TieredSpread struct {
	Threshold float64
	Above     float64
	AtOrBelow float64
}

func (t TieredSpread) Spread(amount float64) float64 {
	if amount > t.Threshold {
		return t.Above
	}
	return t.AtOrBelow
}

// FeeSchedule charges a percentage of the amount with a minimum fee floor.
type FeeSchedule struct {
	MinimumFee float64
	Percentage float64
}

func (f FeeSchedule) Fee(amount float64) float64 {
	return math.Max(f.MinimumFee, amount*f.Percentage)
}
