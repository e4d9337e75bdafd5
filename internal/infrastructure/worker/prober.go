package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/domain"
	infraconfig "github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var _ application.Worker = (*Prober)(nil)

// Prober periodically resolves a fixed set of pairs through the market-rate
// resolver and publishes the outcome. It never changes what requests see.
type Prober struct {
	Resolver  application.MarketResolver
	Publisher application.ProbePublisher
	Pairs     []domain.CurrencyPair
	Schedule  string
	// TickTimeout bounds one whole tick, publishing included.
	TickTimeout time.Duration
	// OnDegraded is called for every pair that fell back to the static table.
	OnDegraded func(domain.CurrencyPair)
	Log        *zap.Logger

	mu sync.Mutex // serializes ticks
}

// NewProber validates schedule as a standard 5-field cron spec (descriptors allowed).
func NewProber(resolver application.MarketResolver, publisher application.ProbePublisher, pairs []domain.CurrencyPair, schedule string, log *zap.Logger) (*Prober, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("probe schedule %q: %w", schedule, err)
	}
	if publisher == nil {
		publisher = application.NoopProbePublisher{}
	}
	return &Prober{
		Resolver:    resolver,
		Publisher:   publisher,
		Pairs:       pairs,
		Schedule:    schedule,
		TickTimeout: infraconfig.DefaultProbeTimeout,
		Log:         log,
	}, nil
}

func (w *Prober) logger() *zap.Logger {
	if w.Log == nil {
		return zap.NewNop()
	}
	return w.Log
}

// Start runs RunOnce on the schedule until ctx is canceled. A tick already in
// flight is allowed to finish.
func (w *Prober) Start(ctx context.Context) {
	log := w.logger()
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(w.Schedule, func() { w.RunOnce(ctx) }); err != nil {
		log.Error("probe_worker_schedule_invalid", zap.String("schedule", w.Schedule), zap.Error(err))
		return
	}
	c.Start()
	log.Info("probe_worker_started", zap.String("schedule", w.Schedule), zap.Int("pairs", len(w.Pairs)))

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("probe_worker_stopped")
}

// RunOnce probes every pair once and publishes the results. Failures are logged only.
func (w *Prober) RunOnce(ctx context.Context) []domain.ProbeResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := w.logger()
	if ctx.Err() != nil {
		return nil
	}
	if w.TickTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.TickTimeout)
		defer cancel()
	}

	start := time.Now()
	results := make([]domain.ProbeResult, 0, len(w.Pairs))
	degraded := 0
	for _, p := range w.Pairs {
		mr := w.Resolver.Resolve(ctx, p.From, p.To)
		r := domain.ProbeResult{
			Pair:       p,
			Rate:       mr.Rate,
			Source:     mr.Source,
			ObservedAt: mr.ObservedAt,
			Degraded:   mr.IsFallback(),
		}
		results = append(results, r)

		fields := []zap.Field{zap.String("pair", p.Key()), zap.Float64("rate", r.Rate), zap.String("source", string(r.Source))}
		if r.Degraded {
			degraded++
			log.Warn("probe.pair_resolved", append(fields, zap.Bool("degraded", true))...)
			if w.OnDegraded != nil {
				w.OnDegraded(p)
			}
			continue
		}
		log.Info("probe.pair_resolved", fields...)
	}

	if w.Publisher != nil {
		if err := w.Publisher.Publish(ctx, results); err != nil {
			log.Warn("probe.publish_failed", zap.Error(err))
		}
	}
	log.Info("probe.tick_done", zap.Int("pairs", len(results)), zap.Int("degraded", degraded), zap.Duration("took", time.Since(start)))
	return results
}

// ParsePairs turns "FROM-TO" keys into pairs, rejecting malformed entries.
func ParsePairs(keys []string) ([]domain.CurrencyPair, error) {
	out := make([]domain.CurrencyPair, 0, len(keys))
	for _, k := range keys {
		p, ok := domain.ParsePair(k)
		if !ok {
			return nil, fmt.Errorf("invalid probe pair %q: want FROM-TO", k)
		}
		out = append(out, p)
	}
	return out, nil
}
