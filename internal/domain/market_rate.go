package domain

import "time"

// RateSource names where a MarketRate came from: a live source name or SourceFallback.
type RateSource string

const SourceFallback RateSource = "fallback"

// MarketRate is resolved fresh for every request and never mutated.
type MarketRate struct {
	Pair       CurrencyPair
	Rate       float64
	ObservedAt time.Time
	Source     RateSource
}

func (m MarketRate) IsFallback() bool { return m.Source == SourceFallback }
