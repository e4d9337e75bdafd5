package pg

import (
	"context"
	"fmt"
	"time"

	infraconfig "github.com/Na-Rajan/compareremittance/internal/infrastructure/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB holds the pool used to migrate and read the fallback table.
type DB struct{ Pool *pgxpool.Pool }

type ConnectOption func(*pgxpool.Config)

// WithPoolSize overrides the default pool bounds.
func WithPoolSize(maxConns, minConns int32) ConnectOption {
	return func(c *pgxpool.Config) { c.MaxConns, c.MinConns = maxConns, minConns }
}

// Connect opens a pool and waits for the server to answer. The database may
// start after the service, so the first ping is retried until ctx is done or
// the retry budget runs out.
func Connect(ctx context.Context, url string, opts ...ConnectOption) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns, cfg.MinConns = infraconfig.DefaultPGMaxConns, infraconfig.DefaultPGMinConns
	cfg.MaxConnIdleTime = 2 * time.Minute
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(func() error { return pool.Ping(ctx) }, backoff.WithContext(exp, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() { d.Pool.Close() }
