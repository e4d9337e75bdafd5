package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
)

var errSourceDown = errors.New("source down")

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeSource struct {
	name       string
	rates      map[string]float64
	err        error
	block      bool
	configured *bool

	mu    sync.Mutex
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Latest(ctx context.Context, from, to string) (float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if f.err != nil {
		return 0, f.err
	}
	r, ok := f.rates[from+"-"+to]
	if !ok {
		return 0, errors.New("pair missing")
	}
	return r, nil
}

func (f *fakeSource) Configured() bool {
	if f.configured == nil {
		return true
	}
	return *f.configured
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	store  map[string]domain.MarketRate
	getErr error
	sets   int
}

func (f *fakeCache) Get(_ context.Context, p domain.CurrencyPair) (domain.MarketRate, bool, error) {
	if f.getErr != nil {
		return domain.MarketRate{}, false, f.getErr
	}
	mr, ok := f.store[p.Key()]
	return mr, ok, nil
}

func (f *fakeCache) Set(_ context.Context, mr domain.MarketRate) error {
	if f.store == nil {
		f.store = map[string]domain.MarketRate{}
	}
	f.store[mr.Pair.Key()] = mr
	f.sets++
	return nil
}

type recordingObserver struct {
	attempts []string
	failures []string
	resolved []domain.RateSource
}

func (o *recordingObserver) SourceAttempt(source string, err error, _ time.Duration) {
	o.attempts = append(o.attempts, source)
	if err != nil {
		o.failures = append(o.failures, source)
	}
}

func (o *recordingObserver) Resolved(s domain.RateSource) { o.resolved = append(o.resolved, s) }

// staticResolver always answers with the same market rate.
type staticResolver struct {
	mr    domain.MarketRate
	calls int
}

func (s *staticResolver) Resolve(_ context.Context, from, to string) domain.MarketRate {
	s.calls++
	mr := s.mr
	mr.Pair = domain.NewPair(from, to)
	return mr
}

func boolPtr(b bool) *bool { return &b }
