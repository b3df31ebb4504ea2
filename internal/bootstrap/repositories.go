package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/satchel/internal/config"
	"github.com/osse101/satchel/internal/database"
	"github.com/osse101/satchel/internal/database/memory"
	"github.com/osse101/satchel/internal/database/migrations"
	"github.com/osse101/satchel/internal/database/postgres"
	"github.com/osse101/satchel/internal/database/sqlite"
	"github.com/osse101/satchel/internal/repository"
)

// Storage holds the profile repository for the configured backend along
// with whatever must be released on shutdown
type Storage struct {
	Profiles repository.Profile
	Backend  string

	closers []func() error
}

// Close releases the backend's connections
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStorage connects to the configured backend and applies its
// migrations. The memory backend keeps nothing across restarts.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg)
	case config.BackendSQLite:
		return openSQLite(ctx, cfg)
	case config.BackendMemory:
		slog.Info(LogMsgStorageReady, "backend", config.BackendMemory)
		return &Storage{Profiles: memory.NewProfileRepository(), Backend: config.BackendMemory}, nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.StorageBackend)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Storage, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	// goose drives the pool through database/sql
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	version, err := migrate(ctx, db, migrations.Postgres)
	if err != nil {
		pool.Close()
		return nil, err
	}

	slog.Info(LogMsgStorageReady, "backend", config.BackendPostgres, "schema_version", version)
	return &Storage{
		Profiles: postgres.NewProfileRepository(pool),
		Backend:  config.BackendPostgres,
		closers:  []func() error{func() error { pool.Close(); return nil }},
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config) (*Storage, error) {
	db, err := database.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	version, err := migrate(ctx, db, migrations.SQLite)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info(LogMsgStorageReady, "backend", config.BackendSQLite, "path", cfg.SQLitePath, "schema_version", version)
	return &Storage{
		Profiles: sqlite.NewProfileRepository(db),
		Backend:  config.BackendSQLite,
		closers:  []func() error{db.Close},
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, dialect migrations.Dialect) (int64, error) {
	version, err := migrations.Up(ctx, db, dialect)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	return version, nil
}
