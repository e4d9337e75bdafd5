package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/Na-Rajan/compareremittance/internal/domain"
	"go.uber.org/zap"
)

// FallbackRepo reads and maintains the fallback_rates table.
type FallbackRepo struct{ db *DB }

func NewFallbackRepo(db *DB) *FallbackRepo { return &FallbackRepo{db: db} }

// Load returns every stored row as a FallbackTable keyed "FROM-TO".
func (r *FallbackRepo) Load(ctx context.Context) (domain.FallbackTable, error) {
	const q = `SELECT from_code, to_code, rate::float8 FROM fallback_rates`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query fallback_rates: %w", err)
	}
	defer rows.Close()

	table := domain.FallbackTable{}
	for rows.Next() {
		var from, to string
		var rate float64
		if err := rows.Scan(&from, &to, &rate); err != nil {
			return nil, fmt.Errorf("scan fallback_rates: %w", err)
		}
		table[domain.NewPair(from, to).Key()] = rate
	}
	return table, rows.Err()
}

func (r *FallbackRepo) Upsert(ctx context.Context, pair domain.CurrencyPair, rate float64, at time.Time) error {
	const up = `
        INSERT INTO fallback_rates(pair_key, from_code, to_code, rate, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (pair_key) DO UPDATE
          SET rate=EXCLUDED.rate, updated_at=EXCLUDED.updated_at`
	_, err := r.db.Pool.Exec(ctx, up, pair.Key(), pair.From, pair.To, rate, at)
	return err
}

// LoadFallbackTable connects, migrates, reads the table once and closes the pool.
// The result is immutable for the lifetime of the process.
func LoadFallbackTable(ctx context.Context, url string, log *zap.Logger) (domain.FallbackTable, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	version, err := RunMigrations(ctx, db)
	if err != nil {
		return nil, err
	}
	table, err := NewFallbackRepo(db).Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("pg.fallback_table_loaded", zap.Uint("schema_version", version), zap.Int("pairs", len(table)))
	return table, nil
}
