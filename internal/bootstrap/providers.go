package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Na-Rajan/compareremittance/internal/application"
	"github.com/Na-Rajan/compareremittance/internal/config"
	"github.com/Na-Rajan/compareremittance/internal/domain"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/httpx"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/kafka"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/logx"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/metrics"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/pg"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/provider"
	redisstore "github.com/Na-Rajan/compareremittance/internal/infrastructure/redis"
	"github.com/Na-Rajan/compareremittance/internal/infrastructure/worker"
	"github.com/Na-Rajan/compareremittance/internal/pricing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func ProvideLogger(cfg config.Config) *zap.Logger {
	if err := logx.SetLevel(cfg.LogLevel); err != nil {
		logx.L().Warn("log level not applied", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	return logx.L()
}

// ProvideRateSources builds the live candidates in RATE_SOURCES order. Each HTTP
// source gets its own client and local rate limiter.
func ProvideRateSources(cfg config.Config, log *zap.Logger) ([]application.RateSource, error) {
	client := func() *httpx.Client {
		return &httpx.Client{
			HTTP:    &http.Client{Timeout: cfg.SourceTimeout},
			Limiter: httpx.NewLimiter(cfg.SourceRateLimit),
			Log:     log,
		}
	}
	sources := make([]application.RateSource, 0, len(cfg.RateSources))
	for _, name := range cfg.RateSources {
		switch strings.TrimSpace(name) {
		case provider.NameExchangeRateAPI:
			sources = append(sources, provider.NewExchangeRateAPI(cfg.ExchangeRateAPIBase, client()))
		case provider.NameOpenERAPI:
			sources = append(sources, provider.NewOpenERAPI(cfg.OpenERAPIBase, client()))
		case provider.NameExchangeRatesAPI:
			sources = append(sources, provider.NewExchangeRatesAPI(cfg.ExchangeAPIBase, cfg.ExchangeAPIKey, client()))
		case provider.NameStatic:
			sources = append(sources, provider.NewStatic(cfg.StaticRate))
		case "":
		default:
			return nil, fmt.Errorf("unknown rate source %q", name)
		}
	}
	return sources, nil
}

// ProvideFallbackTable returns the built-in table, or the Postgres one for STORAGE=pg.
func ProvideFallbackTable(ctx context.Context, cfg config.Config, log *zap.Logger) (domain.FallbackTable, error) {
	switch cfg.Storage {
	case "", "memory":
		return domain.DefaultFallbackTable(), nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, ErrMissingDBURL
		}
		return pg.LoadFallbackTable(ctx, cfg.DatabaseURL, log)
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", cfg.Storage)
	}
}

// ProvideRateCache returns nil when RATE_CACHE is not "redis".
func ProvideRateCache(cfg config.Config) (*redisstore.RateCache, func(), error) {
	switch cfg.RateCache {
	case "", "none":
		return nil, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.New(client, cfg.RateCacheTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown RATE_CACHE %q", cfg.RateCache)
	}
}

func ProvideResolver(cfg config.Config, sources []application.RateSource, fallback domain.FallbackTable,
	cache *redisstore.RateCache, m *metrics.Metrics, log *zap.Logger) *application.MarketRateResolver {
	opts := []application.ResolverOption{
		application.WithSourceTimeout(cfg.SourceTimeout),
		application.WithResolverLogger(log),
	}
	if cache != nil {
		opts = append(opts, application.WithRateCache(cache))
	}
	if m != nil {
		opts = append(opts, application.WithObserver(m))
	}
	r := application.NewMarketRateResolver(sources, fallback, opts...)
	log.Info("resolver_ready", zap.Strings("sources", r.Sources()), zap.Int("fallback_pairs", len(fallback)))
	return r
}

func ProvideComparisonService(resolver application.MarketResolver) *application.ComparisonService {
	return application.NewComparisonService(resolver, pricing.DefaultCatalog())
}

// ProvideProbePublisher returns a Kafka publisher when KAFKA_BROKERS is set, a no-op otherwise.
func ProvideProbePublisher(cfg config.Config, log *zap.Logger) (application.ProbePublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return application.NoopProbePublisher{}, func() {}
	}
	p := kafka.NewProbePublisher(cfg.KafkaBrokers, cfg.KafkaProbeTopic, log)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn("kafka close", zap.Error(err))
		}
	}
}

func ProvideProber(cfg config.Config, resolver application.MarketResolver, pub application.ProbePublisher,
	m *metrics.Metrics, log *zap.Logger) (*worker.Prober, error) {
	pairs, err := worker.ParsePairs(cfg.ProbePairs)
	if err != nil {
		return nil, err
	}
	p, err := worker.NewProber(resolver, pub, pairs, cfg.ProbeSchedule, log.With(zap.String("worker", "probe")))
	if err != nil {
		return nil, err
	}
	if m != nil {
		p.OnDegraded = func(pair domain.CurrencyPair) {
			m.ProbeDegradedTotal.WithLabelValues(pair.Key()).Inc()
		}
	}
	return p, nil
}
