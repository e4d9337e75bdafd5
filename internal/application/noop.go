package application

import (
	"context"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
)

// NoopObserver discards resolver outcomes.
type NoopObserver struct{}

func (NoopObserver) SourceAttempt(string, error, time.Duration) {}
func (NoopObserver) Resolved(domain.RateSource)                 {}

// NoopProbePublisher drops probe results; used when no broker is configured.
type NoopProbePublisher struct{}

func (NoopProbePublisher) Publish(context.Context, []domain.ProbeResult) error { return nil }
