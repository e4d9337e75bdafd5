package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultSourceTimeout = 5 * time.Second
	unknownPairRate      = 1.0
)

var ErrUnusableRate = errors.New("source returned a non-positive or non-finite rate")

// MarketRateResolver tries live sources in priority order and degrades to the
// fallback table. Resolve never fails.
type MarketRateResolver struct {
	sources  []RateSource
	fallback FallbackTable
	cache    RateCache
	timeout  time.Duration
	clock    Clock
	log      *zap.Logger
	observer ResolveObserver
}

type ResolverOption func(*MarketRateResolver)

func WithSourceTimeout(d time.Duration) ResolverOption {
	return func(r *MarketRateResolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithRateCache(c RateCache) ResolverOption { return func(r *MarketRateResolver) { r.cache = c } }
func WithResolverClock(c Clock) ResolverOption { return func(r *MarketRateResolver) { r.clock = c } }
func WithResolverLogger(l *zap.Logger) ResolverOption {
	return func(r *MarketRateResolver) { r.log = l }
}
func WithObserver(o ResolveObserver) ResolverOption {
	return func(r *MarketRateResolver) { r.observer = o }
}

func NewMarketRateResolver(sources []RateSource, fallback FallbackTable, opts ...ResolverOption) *MarketRateResolver {
	r := &MarketRateResolver{fallback: fallback, timeout: DefaultSourceTimeout}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = realClock{}
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.observer == nil {
		r.observer = NoopObserver{}
	}
	if r.fallback == nil {
		r.fallback = domain.FallbackTable{}
	}
	for _, s := range sources {
		if s == nil {
			continue
		}
		if c, ok := s.(Configurable); ok && !c.Configured() {
			r.log.Info("resolver.source_skipped", zap.String("source", s.Name()), zap.String("reason", "not configured"))
			continue
		}
		r.sources = append(r.sources, s)
	}
	return r
}

// Sources returns the names of the candidates in cascade order.
func (r *MarketRateResolver) Sources() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

func (r *MarketRateResolver) Resolve(ctx context.Context, from, to string) domain.MarketRate {
	pair := domain.NewPair(from, to)
	log := r.log.With(zap.String("pair", pair.Key()))

	if r.cache != nil {
		mr, ok, err := r.cache.Get(ctx, pair)
		switch {
		case err != nil:
			log.Warn("resolver.cache_get_failed", zap.Error(err))
		case ok && usable(mr.Rate):
			r.observer.Resolved(mr.Source)
			return mr
		case ok:
			log.Warn("resolver.cache_entry_unusable", zap.Float64("rate", mr.Rate))
		}
	}

	for _, src := range r.sources {
		rate, err := r.attempt(ctx, src, pair)
		if err != nil {
			log.Warn("resolver.source_failed", zap.String("source", src.Name()), zap.Error(err))
			continue
		}
		mr := domain.MarketRate{
			Pair:       pair,
			Rate:       rate,
			ObservedAt: r.clock.Now(),
			Source:     domain.RateSource(src.Name()),
		}
		if r.cache != nil {
			if err := r.cache.Set(ctx, mr); err != nil {
				log.Warn("resolver.cache_set_failed", zap.Error(err))
			}
		}
		r.observer.Resolved(mr.Source)
		log.Debug("resolver.resolved", zap.String("source", src.Name()), zap.Float64("rate", rate))
		return mr
	}

	rate, ok := r.fallback.Lookup(pair)
	if !ok {
		rate = unknownPairRate
	}
	log.Warn("resolver.fallback", zap.Bool("known_pair", ok), zap.Float64("rate", rate))
	r.observer.Resolved(domain.SourceFallback)
	return domain.MarketRate{
		Pair:       pair,
		Rate:       rate,
		ObservedAt: r.clock.Now(),
		Source:     domain.SourceFallback,
	}
}

func (r *MarketRateResolver) attempt(ctx context.Context, src RateSource, pair domain.CurrencyPair) (float64, error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	rate, err := src.Latest(cctx, pair.From, pair.To)
	if err == nil && !usable(rate) {
		err = fmt.Errorf("%w: %v", ErrUnusableRate, rate)
	}
	r.observer.SourceAttempt(src.Name(), err, time.Since(start))
	return rate, err
}

// usable rejects zero, negative, NaN and infinite rates.
func usable(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0)
}
