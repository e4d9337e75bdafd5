package httpserver

import (
	"cmp"
	"slices"

	"github.com/Na-Rajan/compareremittance/internal/domain"
)

// rankQuotes orders quotes in place. Speed labels compare as plain strings,
// so "1-2 days" sorts before "Same day". Unknown or empty keys keep catalog order.
func rankQuotes(quotes []domain.Quote, by string) {
	var less func(a, b domain.Quote) int
	switch by {
	case SortByRate:
		less = func(a, b domain.Quote) int { return cmp.Compare(b.AppliedRate, a.AppliedRate) }
	case SortByFee:
		less = func(a, b domain.Quote) int { return cmp.Compare(a.Fee, b.Fee) }
	case SortBySpeed:
		less = func(a, b domain.Quote) int {
			return cmp.Compare(a.Provider.TransferSpeed, b.Provider.TransferSpeed)
		}
	default:
		return
	}
	slices.SortStableFunc(quotes, less)
}
