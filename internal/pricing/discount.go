package pricing

import "github.com/Na-Rajan/compareremittance/internal/domain"

var (
	_ domain.DiscountRule = FixedDiscount(0)
	_ domain.DiscountRule = ZeroFeeAtOrAbove(0)
	_ domain.DiscountRule = PercentOffAtOrAbove{}
)

// FixedDiscount subtracts a fixed amount from the fee, never going below zero.
type FixedDiscount float64

func (d FixedDiscount) Apply(fee, _ float64) float64 {
	return clampFee(fee - float64(d))
}

// ZeroFeeAtOrAbove waives the fee when the amount reaches the threshold.
type ZeroFeeAtOrAbove float64

func (t ZeroFeeAtOrAbove) Apply(fee, amount float64) float64 {
	if amount >= float64(t) {
		return 0
	}
	return fee
}

// PercentOffAtOrAbove reduces the fee by Percent (0..1) once the amount reaches Threshold.
type PercentOffAtOrAbove struct {
	Threshold float64
	Percent   float64
}

func (p PercentOffAtOrAbove) Apply(fee, amount float64) float64 {
	if amount >= p.Threshold {
		return clampFee(fee * (1 - p.Percent))
	}
	return fee
}

func clampFee(fee float64) float64 {
	if fee < 0 {
		return 0
	}
	return fee
}
