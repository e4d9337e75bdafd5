package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/Na-Rajan/compareremittance/internal/pricing"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func fallbackOnlyService(now time.Time) *ComparisonService {
	down := &fakeSource{name: "primary", err: errSourceDown}
	resolver := NewMarketRateResolver([]RateSource{down}, domain.DefaultFallbackTable(),
		WithResolverClock(fakeClock{t: now}))
	return NewComparisonService(resolver, pricing.DefaultCatalog(), WithClock(fakeClock{t: now}))
}

func quoteByID(t *testing.T, quotes []domain.Quote, id string) domain.Quote {
	t.Helper()
	for _, q := range quotes {
		if q.Provider.ID == id {
			return q
		}
	}
	t.Fatalf("no quote for %s", id)
	return domain.Quote{}
}

func TestComputeQuotes_ScenarioA_FallbackBase(t *testing.T) {
	t.Parallel()
	svc := fallbackOnlyService(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	market, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", 1000)
	require.NoError(t, err)
	require.Equal(t, domain.SourceFallback, market.Source)
	require.InDelta(t, 83.15, market.Rate, tolerance)
	require.Len(t, quotes, 5)

	wise := quoteByID(t, quotes, "wise")
	require.InDelta(t, 83.15*(1-0.002), wise.AppliedRate, tolerance)
	require.InDelta(t, 82.98, wise.AppliedRate, 0.01)
	require.InDelta(t, 5.00, wise.Fee, tolerance)
	require.InDelta(t, 995*83.15*0.998, wise.AmountReceived, 1e-6)
	require.InDelta(t, 82_563, wise.AmountReceived, 10)
	require.InDelta(t, wise.AmountReceived/1000, wise.EffectiveRate, tolerance)
	require.Equal(t, domain.SourceFallback, wise.MarketRateSource)
	require.Empty(t, wise.AppliedOffers)
}

func TestComputeQuotes_ScenarioB_PromoZeroFee(t *testing.T) {
	t.Parallel()
	svc := fallbackOnlyService(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))

	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", 1500)
	require.NoError(t, err)

	xoom := quoteByID(t, quotes, "xoom")
	require.Equal(t, 0.0, xoom.Fee)
	require.InDelta(t, 1500*xoom.AppliedRate, xoom.AmountReceived, 1e-6)
	require.Equal(t, []domain.OfferKind{domain.OfferPromo}, xoom.AppliedOffers)
}

func TestComputeQuotes_ScenarioC_UnknownPair(t *testing.T) {
	t.Parallel()
	svc := fallbackOnlyService(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	market, quotes, err := svc.ComputeQuotes(context.Background(), "ZZZ", "QQQ", 100)
	require.NoError(t, err)
	require.Equal(t, 1.0, market.Rate)
	require.Equal(t, domain.SourceFallback, market.Source)

	catalog := pricing.DefaultCatalog()
	for _, q := range quotes {
		e, ok := catalog.Lookup(q.Provider.ID)
		require.True(t, ok)
		require.InDelta(t, 1+e.Model.Spread(100), q.AppliedRate, tolerance)
	}
}

func TestComputeQuotes_ScenarioD_InvalidAmount(t *testing.T) {
	t.Parallel()
	for _, amount := range []float64{-5, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		resolver := &staticResolver{mr: domain.MarketRate{Rate: 83.15, Source: domain.SourceFallback}}
		svc := NewComparisonService(resolver, pricing.DefaultCatalog())

		market, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", amount)
		require.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %v", amount)
		require.Nil(t, quotes)
		require.Zero(t, market)
		require.Equal(t, 0, resolver.calls)
	}
}

func TestComputeQuotes_MissingCurrency(t *testing.T) {
	t.Parallel()
	resolver := &staticResolver{mr: domain.MarketRate{Rate: 1}}
	svc := NewComparisonService(resolver, pricing.DefaultCatalog())

	_, _, err := svc.ComputeQuotes(context.Background(), "", "INR", 100)
	require.True(t, errors.Is(err, domain.ErrMissingCurrency))
	_, err = svc.MarketRate(context.Background(), "USD", "")
	require.ErrorIs(t, err, domain.ErrMissingCurrency)
	require.Equal(t, 0, resolver.calls)
}

func TestComputeQuotes_RateDerivationAndFeeFloor(t *testing.T) {
	t.Parallel()
	market := domain.MarketRate{Rate: 91.35, Source: "live"}
	catalog := pricing.DefaultCatalog()
	// Offers still active here, so discounts may take fees below the schedule floor.
	svc := NewComparisonService(&staticResolver{mr: market}, catalog,
		WithClock(fakeClock{t: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}))

	for _, amount := range []float64{0.5, 1, 10, 99.99, 500, 999, 1000, 1000.01, 2500, 50000} {
		_, quotes, err := svc.ComputeQuotes(context.Background(), "EUR", "INR", amount)
		require.NoError(t, err)
		require.Len(t, quotes, catalog.Len())
		for _, q := range quotes {
			e, _ := catalog.Lookup(q.Provider.ID)
			require.InDelta(t, market.Rate*(1+e.Model.Spread(amount)), q.AppliedRate, tolerance)
			require.GreaterOrEqual(t, q.Fee, 0.0)
			require.GreaterOrEqual(t, q.AmountReceived, 0.0)
			if len(q.AppliedOffers) == 0 {
				require.InDelta(t, e.Model.Fee(amount), q.Fee, tolerance)
			}
			require.Equal(t, domain.RateSource("live"), q.MarketRateSource)
			require.Equal(t, amount, q.RequestedAmount)
		}
	}
}

func TestComputeQuotes_OrderFollowsCatalog(t *testing.T) {
	t.Parallel()
	svc := NewComparisonService(&staticResolver{mr: domain.MarketRate{Rate: 1}}, pricing.DefaultCatalog())
	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "EUR", 100)
	require.NoError(t, err)

	var ids []string
	for _, q := range quotes {
		ids = append(ids, q.Provider.ID)
	}
	require.Equal(t, []string{"wise", "xoom", "remitly", "western-union", "moneygram"}, ids)
}

func TestComputeQuotes_FirstTimeDiscountWhileActive(t *testing.T) {
	t.Parallel()
	svc := NewComparisonService(&staticResolver{mr: domain.MarketRate{Rate: 83.15}}, pricing.DefaultCatalog(),
		WithClock(fakeClock{t: time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)}))

	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", 1000)
	require.NoError(t, err)

	wise := quoteByID(t, quotes, "wise")
	require.Equal(t, 0.0, wise.Fee)
	require.Equal(t, []domain.OfferKind{domain.OfferFirstTime}, wise.AppliedOffers)

	remitly := quoteByID(t, quotes, "remitly")
	require.InDelta(t, 6.00-5, remitly.Fee, tolerance)

	moneygram := quoteByID(t, quotes, "moneygram")
	require.InDelta(t, 10.0, moneygram.Fee, tolerance, "promo expired on 2024-10-31")
}

func TestComputeQuotes_PromoOnlyWithExpiredFirstTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := pricing.MustRegistry(pricing.Entry{
		Provider: domain.Provider{
			ID: "both",
			Offers: []domain.Offer{
				{Kind: domain.OfferFirstTime, ValidUntil: domain.Date(2025, time.May, 31), Rule: pricing.FixedDiscount(100)},
				{Kind: domain.OfferPromo, ValidUntil: domain.Date(2025, time.June, 1), Rule: pricing.PercentOffAtOrAbove{Threshold: 100, Percent: 0.5}},
				{Kind: domain.OfferPromo, ValidUntil: domain.Date(2026, time.January, 1), Rule: pricing.ZeroFeeAtOrAbove(0)},
			},
		},
		Model: pricing.Model{Spread: pricing.FlatSpread(0), Fee: pricing.FeeSchedule{MinimumFee: 10, Percentage: 0.01}.Fee},
	})
	svc := NewComparisonService(&staticResolver{mr: domain.MarketRate{Rate: 2}}, catalog, WithClock(fakeClock{t: now}))

	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "EUR", 1000)
	require.NoError(t, err)
	q := quotes[0]
	require.InDelta(t, 5.0, q.Fee, tolerance, "only the first active promo applies")
	require.Equal(t, []domain.OfferKind{domain.OfferPromo}, q.AppliedOffers)
	require.InDelta(t, (1000-5.0)*2, q.AmountReceived, tolerance)
}

func TestComputeQuotes_FeeAboveAmountClampsReceived(t *testing.T) {
	t.Parallel()
	svc := fallbackOnlyService(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", 1)
	require.NoError(t, err)
	for _, q := range quotes {
		require.Greater(t, q.Fee, q.RequestedAmount)
		require.Equal(t, 0.0, q.AmountReceived)
		require.Equal(t, 0.0, q.EffectiveRate)
	}

	_, quotes, err = svc.ComputeQuotes(context.Background(), "USD", "INR", 1e9)
	require.NoError(t, err)
	for _, q := range quotes {
		require.Greater(t, q.AmountReceived, 0.0)
		require.False(t, q.WithinLimits)
	}
}

func TestComputeQuotes_WithinLimits(t *testing.T) {
	t.Parallel()
	svc := fallbackOnlyService(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	_, quotes, err := svc.ComputeQuotes(context.Background(), "USD", "INR", 20000)
	require.NoError(t, err)
	require.True(t, quoteByID(t, quotes, "wise").WithinLimits)
	require.False(t, quoteByID(t, quotes, "moneygram").WithinLimits)
}
