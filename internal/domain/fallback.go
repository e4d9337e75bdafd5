package domain

// FallbackTable is the static rate table consulted when every live source fails.
// Keys use CurrencyPair.Key ("FROM-TO").
type FallbackTable map[string]float64

// Lookup ignores non-positive entries so a bad row never produces an unusable rate.
func (t FallbackTable) Lookup(p CurrencyPair) (float64, bool) {
	r, ok := t[p.Key()]
	if !ok || !(r > 0) {
		return 0, false
	}
	return r, true
}

// DefaultFallbackTable returns a fresh copy of the built-in table.
func DefaultFallbackTable() FallbackTable {
	return FallbackTable{
		"USD-INR": 83.15,
		"USD-EUR": 0.91,
		"USD-GBP": 0.78,
		"USD-CAD": 1.36,
		"USD-AUD": 1.51,
		"USD-MXN": 16.85,
		"USD-PHP": 56.25,
		"USD-NGN": 1580.50,
		"USD-BRL": 4.95,

		"EUR-INR": 91.35,
		"EUR-USD": 1.10,
		"EUR-GBP": 0.86,
		"EUR-CAD": 1.49,
		"EUR-AUD": 1.66,

		"GBP-INR": 106.45,
		"GBP-USD": 1.28,
		"GBP-EUR": 1.16,
		"GBP-CAD": 1.74,
		"GBP-AUD": 1.94,

		"CAD-INR": 61.15,
		"CAD-USD": 0.74,
		"CAD-EUR": 0.67,
		"CAD-GBP": 0.57,
		"CAD-AUD": 1.11,

		"AUD-INR": 55.05,
		"AUD-USD": 0.66,
		"AUD-EUR": 0.60,
		"AUD-GBP": 0.52,
		"AUD-CAD": 0.90,
	}
}
