package pg

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations brings fallback_rates to the newest embedded version and
// returns that version. It runs over its own connection built from the pool's
// settings, so the pool stays open for the caller.
func RunMigrations(ctx context.Context, db *DB) (uint, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return 0, fmt.Errorf("migrations source: %w", err)
	}
	sqldb := stdlib.OpenDB(*db.Pool.Config().ConnConfig)
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return 0, fmt.Errorf("migrations connection: %w", err)
	}
	driver, err := pgdriver.WithInstance(sqldb, &pgdriver.Config{})
	if err != nil {
		_ = sqldb.Close()
		return 0, fmt.Errorf("migrations driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return 0, fmt.Errorf("migrations init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("fallback schema left dirty at version %d", version)
	}
	return version, nil
}
