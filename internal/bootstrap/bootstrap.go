package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"github.com/Na-Rajan/compareremittance/internal/config"
	infraconfig "github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	httpserver "github.com/Na-Rajan/compareremittance/internal/infrastructure/http"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/metrics"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/worker"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// API is the assembled HTTP process. Prober is nil unless PROBE_ENABLED.
type API struct {
	Server *http.Server
	Prober *worker.Prober
	Log    *zap.Logger
}

// cleanups runs registered closers in reverse order.
type cleanups []func()

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func InitAPI(ctx context.Context, cfg config.Config) (*API, func(), error) {
	log := ProvideLogger(cfg)
	var done cleanups

	sources, err := ProvideRateSources(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	fallback, err := ProvideFallbackTable(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cache, closeCache, err := ProvideRateCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	done = append(done, closeCache)

	m := metrics.NewMetrics(nil)
	resolver := ProvideResolver(cfg, sources, fallback, cache, m, log)
	svc := ProvideComparisonService(resolver)

	opts := []httpserver.ServerOption{httpserver.WithMetrics(m), httpserver.WithLogger(log)}
	if cache != nil {
		opts = append(opts, httpserver.WithReadiness(cache.Ping))
	}
	handler := httpserver.NewRouter(httpserver.NewServer(svc, opts...))

	api := &API{
		Server: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  infraconfig.DefaultReadTimeout,
			WriteTimeout: infraconfig.DefaultWriteTimeout,
			IdleTimeout:  infraconfig.DefaultIdleTimeout,
		},
		Log: log,
	}

	if cfg.ProbeEnabled {
		pub, closePub := ProvideProbePublisher(cfg, log)
		done = append(done, closePub)
		api.Prober, err = ProvideProber(cfg, resolver, pub, m, log)
		if err != nil {
			done.run()
			return nil, nil, err
		}
	}
	return api, done.run, nil
}

// InitWorker assembles the standalone probe process. It shares the resolver
// wiring with the API but serves no HTTP.
func InitWorker(ctx context.Context, cfg config.Config) (*worker.Prober, func(), error) {
	log := ProvideLogger(cfg)
	var done cleanups

	sources, err := ProvideRateSources(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	fallback, err := ProvideFallbackTable(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cache, closeCache, err := ProvideRateCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	done = append(done, closeCache)

	m := metrics.NewMetrics(nil)
	resolver := ProvideResolver(cfg, sources, fallback, cache, m, log)
	pub, closePub := ProvideProbePublisher(cfg, log)
	done = append(done, closePub)

	p, err := ProvideProber(cfg, resolver, pub, m, log)
	if err != nil {
		done.run()
		return nil, nil, err
	}
	return p, done.run, nil
}
