package domain

import "time"

type OfferKind string

const (
	OfferFirstTime OfferKind = "first-time"
	OfferPromo     OfferKind = "promo"
)

// DiscountRule maps a fee to the adjusted fee for a requested amount.
// Implementations must be pure; callers clamp the result at zero.
type DiscountRule interface {
	Apply(baseFee, amount float64) float64
}

type Offer struct {
	Kind        OfferKind
	Description string
	// ValidUntil is a calendar date; the offer stays active through that whole day (UTC).
	ValidUntil time.Time
	Rule       DiscountRule
}

// Active reports whether the offer is still valid at now.
func (o Offer) Active(now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)
	until := o.ValidUntil.UTC().Truncate(24 * time.Hour)
	return !today.After(until)
}

// Date builds a UTC calendar date for ValidUntil.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
