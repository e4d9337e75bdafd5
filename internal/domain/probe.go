package domain

import "time"

// ProbeResult is emitted by the periodic liveness probe of the rate resolver.
type ProbeResult struct {
	Pair       CurrencyPair
	Rate       float64
	Source     RateSource
	ObservedAt time.Time
	Degraded   bool
}
