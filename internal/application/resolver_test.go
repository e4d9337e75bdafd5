package application

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestResolver(sources []RateSource, opts ...ResolverOption) *MarketRateResolver {
	opts = append([]ResolverOption{WithResolverClock(fakeClock{t: testNow})}, opts...)
	return NewMarketRateResolver(sources, domain.DefaultFallbackTable(), opts...)
}

func TestResolve_FirstSourceWins(t *testing.T) {
	t.Parallel()
	a := &fakeSource{name: "a", rates: map[string]float64{"USD-INR": 84.01}}
	b := &fakeSource{name: "b", rates: map[string]float64{"USD-INR": 90}}
	r := newTestResolver([]RateSource{a, b})

	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, domain.RateSource("a"), mr.Source)
	require.InDelta(t, 84.01, mr.Rate, 1e-9)
	require.Equal(t, testNow, mr.ObservedAt)
	require.Equal(t, 0, b.callCount())
}

func TestResolve_CascadeOrder(t *testing.T) {
	t.Parallel()
	first := &fakeSource{name: "first", err: errSourceDown}
	second := &fakeSource{name: "second", rates: map[string]float64{"EUR-GBP": 0.85}}
	third := &fakeSource{name: "third", rates: map[string]float64{"EUR-GBP": 0.99}}
	obs := &recordingObserver{}
	r := newTestResolver([]RateSource{first, second, third}, WithObserver(obs))

	mr := r.Resolve(context.Background(), "EUR", "GBP")
	require.Equal(t, domain.RateSource("second"), mr.Source)
	require.InDelta(t, 0.85, mr.Rate, 1e-9)
	require.Equal(t, 1, first.callCount())
	require.Equal(t, 1, second.callCount())
	require.Equal(t, 0, third.callCount())
	require.Equal(t, []string{"first", "second"}, obs.attempts)
	require.Equal(t, []string{"first"}, obs.failures)
	require.Equal(t, []domain.RateSource{"second"}, obs.resolved)
}

func TestResolve_TimeoutAdvancesCascade(t *testing.T) {
	t.Parallel()
	slow := &fakeSource{name: "slow", block: true}
	fast := &fakeSource{name: "fast", rates: map[string]float64{"USD-INR": 83.5}}
	r := newTestResolver([]RateSource{slow, fast}, WithSourceTimeout(20*time.Millisecond))

	start := time.Now()
	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, domain.RateSource("fast"), mr.Source)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestResolve_UnusableRatesAreSkipped(t *testing.T) {
	t.Parallel()
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		src := &fakeSource{name: "bad", rates: map[string]float64{"USD-INR": bad}}
		r := newTestResolver([]RateSource{src})
		mr := r.Resolve(context.Background(), "USD", "INR")
		require.Equal(t, domain.SourceFallback, mr.Source, "rate %v", bad)
		require.InDelta(t, 83.15, mr.Rate, 1e-9)
	}
}

func TestResolve_FallbackTotality(t *testing.T) {
	t.Parallel()
	down := &fakeSource{name: "down", err: errSourceDown}
	r := newTestResolver([]RateSource{down})

	pairs := [][2]string{{"USD", "INR"}, {"ZZZ", "QQQ"}, {"", ""}, {"usd", "inr"}, {"GBP", "GBP"}}
	for _, p := range pairs {
		mr := r.Resolve(context.Background(), p[0], p[1])
		require.Greater(t, mr.Rate, 0.0)
		require.Equal(t, domain.SourceFallback, mr.Source)
	}
}

func TestResolve_FallbackTableAndSentinel(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, domain.SourceFallback, mr.Source)
	require.InDelta(t, 83.15, mr.Rate, 1e-9)

	mr = r.Resolve(context.Background(), "ZZZ", "QQQ")
	require.Equal(t, domain.SourceFallback, mr.Source)
	require.Equal(t, 1.0, mr.Rate)
}

func TestResolve_IdentityPair(t *testing.T) {
	t.Parallel()
	src := &fakeSource{name: "live", rates: map[string]float64{"USD-INR": 83}}
	r := newTestResolver([]RateSource{src})

	mr := r.Resolve(context.Background(), "XXX", "XXX")
	require.Equal(t, 1.0, mr.Rate)
	require.Equal(t, domain.SourceFallback, mr.Source)
}

func TestResolve_CanceledContextStillAnswers(t *testing.T) {
	t.Parallel()
	slow := &fakeSource{name: "slow", block: true}
	r := newTestResolver([]RateSource{slow})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mr := r.Resolve(ctx, "GBP", "INR")
	require.Equal(t, domain.SourceFallback, mr.Source)
	require.InDelta(t, 106.45, mr.Rate, 1e-9)
}

func TestNewMarketRateResolver_SkipsUnconfiguredSources(t *testing.T) {
	t.Parallel()
	keyed := &fakeSource{name: "keyed", configured: boolPtr(false), rates: map[string]float64{"USD-INR": 1}}
	open := &fakeSource{name: "open", rates: map[string]float64{"USD-INR": 84}}
	r := newTestResolver([]RateSource{keyed, nil, open})

	require.Equal(t, []string{"open"}, r.Sources())
	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, domain.RateSource("open"), mr.Source)
	require.Equal(t, 0, keyed.callCount())
}

func TestResolve_CacheHitSkipsSources(t *testing.T) {
	t.Parallel()
	src := &fakeSource{name: "live", rates: map[string]float64{"USD-INR": 84}}
	cached := domain.MarketRate{Pair: domain.NewPair("USD", "INR"), Rate: 83.9, ObservedAt: testNow.Add(-time.Minute), Source: "live"}
	cache := &fakeCache{store: map[string]domain.MarketRate{"USD-INR": cached}}
	r := newTestResolver([]RateSource{src}, WithRateCache(cache))

	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, cached, mr)
	require.Equal(t, 0, src.callCount())
}

func TestResolve_CachesOnlyLiveRates(t *testing.T) {
	t.Parallel()
	src := &fakeSource{name: "live", rates: map[string]float64{"USD-INR": 84}}
	cache := &fakeCache{}
	r := newTestResolver([]RateSource{src}, WithRateCache(cache))

	_ = r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, 1, cache.sets)
	_ = r.Resolve(context.Background(), "ZZZ", "QQQ")
	require.Equal(t, 1, cache.sets)
	require.Equal(t, 2, src.callCount())
}

func TestResolve_CacheErrorIsIgnored(t *testing.T) {
	t.Parallel()
	src := &fakeSource{name: "live", rates: map[string]float64{"USD-INR": 84}}
	cache := &fakeCache{getErr: errSourceDown}
	r := newTestResolver([]RateSource{src}, WithRateCache(cache))

	mr := r.Resolve(context.Background(), "USD", "INR")
	require.Equal(t, domain.RateSource("live"), mr.Source)
}

func TestResolve_UnusableCacheEntryFallsThroughToSources(t *testing.T) {
	t.Parallel()
	for _, bad := range []float64{math.Inf(1), math.NaN(), 0, -2} {
		src := &fakeSource{name: "live", rates: map[string]float64{"USD-INR": 84}}
		corrupt := domain.MarketRate{Pair: domain.NewPair("USD", "INR"), Rate: bad, ObservedAt: testNow, Source: "live"}
		cache := &fakeCache{store: map[string]domain.MarketRate{"USD-INR": corrupt}}
		r := newTestResolver([]RateSource{src}, WithRateCache(cache))

		mr := r.Resolve(context.Background(), "USD", "INR")
		require.Equal(t, 84.0, mr.Rate, "cached %v", bad)
		require.Equal(t, 1, src.callCount(), "cached %v", bad)
		require.Equal(t, 84.0, cache.store["USD-INR"].Rate, "live rate replaces the bad entry")
	}
}
