package application

import (
	"context"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/Na-Rajan/compareremittance/internal/pricing"
)

// RateSource is one live market-rate candidate in the resolver cascade.
type RateSource interface {
	Name() string
	// Latest returns the rate for `to` relative to base `from`.
	Latest(ctx context.Context, from, to string) (float64, error)
}

// Configurable is implemented by sources that need credentials or endpoints to be usable.
type Configurable interface {
	Configured() bool
}

// RateCache is an optional short-lived store for live market rates.
type RateCache interface {
	Get(ctx context.Context, pair domain.CurrencyPair) (domain.MarketRate, bool, error)
	Set(ctx context.Context, rate domain.MarketRate) error
}

type FallbackTable interface {
	Lookup(pair domain.CurrencyPair) (float64, bool)
}

type MarketResolver interface {
	Resolve(ctx context.Context, from, to string) domain.MarketRate
}

// ResolveObserver receives per-attempt and per-resolution outcomes (metrics).
type ResolveObserver interface {
	SourceAttempt(source string, err error, took time.Duration)
	Resolved(source domain.RateSource)
}

type ProviderCatalog interface {
	All() []pricing.Entry
	Providers() []domain.Provider
}

type ProbePublisher interface {
	Publish(ctx context.Context, results []domain.ProbeResult) error
}
