package pricing

import (
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
)

// DefaultCatalog is the compiled-in provider table. Offer end dates are the
// providers' published campaign dates: once passed, offers are still listed
// but no longer change fees. Supply a Registry with fresh offers to run new ones.
func DefaultCatalog() *Registry {
	return MustRegistry(
		Entry{
			Provider: domain.Provider{
				ID:            "wise",
				Name:          "Wise",
				LogoURL:       "https://wise.com/favicon.ico",
				Rating:        4.8,
				TransferSpeed: "1-2 days",
				MinAmount:     1,
				MaxAmount:     1000000,
				Features:      []string{"bank-deposit", "mid-market-rate", "mobile-app"},
				Offers: []domain.Offer{{
					Kind:        domain.OfferFirstTime,
					Description: "No fees on your first transfer up to $500",
					ValidUntil:  domain.Date(2024, time.December, 31),
					Rule:        FixedDiscount(10),
				}},
			},
			Model: Model{
				Spread: FlatSpread(-0.002),
				Fee:    FeeSchedule{MinimumFee: 2.50, Percentage: 0.005}.Fee,
			},
		},
		Entry{
			Provider: domain.Provider{
				ID:            "xoom",
				Name:          "Xoom",
				LogoURL:       "https://www.xoom.com/favicon.ico",
				Rating:        4.5,
				TransferSpeed: "Same day",
				MinAmount:     5,
				MaxAmount:     50000,
				Features:      []string{"bank-deposit", "cash-pickup", "mobile-reload"},
				Offers: []domain.Offer{{
					Kind:        domain.OfferPromo,
					Description: "Zero fees on transfers over $1000",
					ValidUntil:  domain.Date(2024, time.November, 30),
					Rule:        ZeroFeeAtOrAbove(1000),
				}},
			},
			Model: Model{
				Spread: FlatSpread(0.005),
				Fee:    FeeSchedule{MinimumFee: 4.99, Percentage: 0.008}.Fee,
			},
		},
		Entry{
			Provider: domain.Provider{
				ID:            "remitly",
				Name:          "Remitly",
				LogoURL:       "https://www.remitly.com/favicon.ico",
				Rating:        4.6,
				TransferSpeed: "Same day",
				MinAmount:     1,
				MaxAmount:     100000,
				Features:      []string{"bank-deposit", "cash-pickup", "delivery-guarantee"},
				Offers: []domain.Offer{{
					Kind:        domain.OfferFirstTime,
					Description: "Free transfer on your first $100",
					ValidUntil:  domain.Date(2024, time.December, 31),
					Rule:        FixedDiscount(5),
				}},
			},
			Model: Model{
				Spread: TieredSpread{Threshold: 1000, Above: -0.001, AtOrBelow: 0.003}.Spread,
				Fee:    FeeSchedule{MinimumFee: 3.99, Percentage: 0.006}.Fee,
			},
		},
		Entry{
			Provider: domain.Provider{
				ID:            "western-union",
				Name:          "Western Union",
				LogoURL:       "https://www.westernunion.com/favicon.ico",
				Rating:        4.2,
				TransferSpeed: "Same day",
				MinAmount:     1,
				MaxAmount:     50000,
				Features:      []string{"agent-network", "cash-pickup", "bank-deposit"},
			},
			Model: Model{
				Spread: FlatSpread(0.015),
				Fee:    FeeSchedule{MinimumFee: 5.99, Percentage: 0.012}.Fee,
			},
		},
		Entry{
			Provider: domain.Provider{
				ID:            "moneygram",
				Name:          "MoneyGram",
				LogoURL:       "https://www.moneygram.com/favicon.ico",
				Rating:        4.3,
				TransferSpeed: "Same day",
				MinAmount:     1,
				MaxAmount:     10000,
				Features:      []string{"agent-network", "cash-pickup"},
				Offers: []domain.Offer{{
					Kind:        domain.OfferPromo,
					Description: "Reduced fees for transfers over $500",
					ValidUntil:  domain.Date(2024, time.October, 31),
					Rule:        PercentOffAtOrAbove{Threshold: 500, Percent: 0.5},
				}},
			},
			Model: Model{
				Spread: FlatSpread(0.010),
				Fee:    FeeSchedule{MinimumFee: 4.99, Percentage: 0.010}.Fee,
			},
		},
	)
}
