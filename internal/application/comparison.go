package application

import (
	"context"
	"math"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/Na-Rajan/compareremittance/internal/pricing"
)

// ComparisonService is the quote engine: one market rate, one quote per provider.
type ComparisonService struct {
	resolver MarketResolver
	catalog  ProviderCatalog
	clock    Clock
}

type Option func(*ComparisonService)

func WithClock(c Clock) Option { return func(s *ComparisonService) { s.clock = c } }

func NewComparisonService(resolver MarketResolver, catalog ProviderCatalog, opts ...Option) *ComparisonService {
	s := &ComparisonService{resolver: resolver, catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	return s
}

// ValidateAmount rejects zero, negative, NaN and infinite amounts.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// ComputeQuotes returns the market rate and one quote per provider in catalog order.
// Currency codes are not interpreted; unknown pairs degrade to the fallback rate.
func (s *ComparisonService) ComputeQuotes(ctx context.Context, from, to string, amount float64) (domain.MarketRate, []domain.Quote, error) {
	if from == "" || to == "" {
		return domain.MarketRate{}, nil, domain.ErrMissingCurrency
	}
	if err := ValidateAmount(amount); err != nil {
		return domain.MarketRate{}, nil, err
	}

	market := s.resolver.Resolve(ctx, from, to)
	now := s.clock.Now()

	entries := s.catalog.All()
	quotes := make([]domain.Quote, 0, len(entries))
	for _, e := range entries {
		quotes = append(quotes, quoteFor(e, market, amount, now))
	}
	return market, quotes, nil
}

func (s *ComparisonService) MarketRate(ctx context.Context, from, to string) (domain.MarketRate, error) {
	if from == "" || to == "" {
		return domain.MarketRate{}, domain.ErrMissingCurrency
	}
	return s.resolver.Resolve(ctx, from, to), nil
}

func (s *ComparisonService) Providers() []domain.Provider { return s.catalog.Providers() }

func (s *ComparisonService) Currencies() []domain.Currency { return domain.Currencies() }

func quoteFor(e pricing.Entry, market domain.MarketRate, amount float64, now time.Time) domain.Quote {
	spread := e.Model.Spread(amount)
	rate := market.Rate * (1 + spread)
	fee := nonNegative(e.Model.Fee(amount))

	var applied []domain.OfferKind
	// FirstTime is applied before Promo; at most one rule of each kind.
	for _, kind := range []domain.OfferKind{domain.OfferFirstTime, domain.OfferPromo} {
		offer, ok := firstActive(e.Provider.Offers, kind, now)
		if !ok {
			continue
		}
		adjusted := nonNegative(offer.Rule.Apply(fee, amount))
		if adjusted != fee {
			applied = append(applied, kind)
		}
		fee = adjusted
	}

	received := nonNegative((amount - fee) * rate)
	return domain.Quote{
		Provider:         e.Provider,
		Spread:           spread,
		AppliedRate:      rate,
		Fee:              fee,
		AmountReceived:   received,
		RequestedAmount:  amount,
		EffectiveRate:    received / amount,
		MarketRateSource: market.Source,
		AppliedOffers:    applied,
		WithinLimits:     e.Provider.Accepts(amount),
	}
}

func firstActive(offers []domain.Offer, kind domain.OfferKind, now time.Time) (domain.Offer, bool) {
	for _, o := range offers {
		if o.Kind == kind && o.Rule != nil && o.Active(now) {
			return o, true
		}
	}
	return domain.Offer{}, false
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
