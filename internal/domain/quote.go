package domain

// Quote is a provider's computed offer for one request. Never persisted.
type Quote struct {
	Provider         Provider
	Spread           float64
	AppliedRate      float64
	Fee              float64
	AmountReceived   float64
	RequestedAmount  float64
	EffectiveRate    float64
	MarketRateSource RateSource
	// AppliedOffers lists the offer kinds whose rules changed the fee.
	AppliedOffers []OfferKind
	// WithinLimits is informational; quotes are never filtered by it.
	WithinLimits bool
}
