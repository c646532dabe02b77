package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultConnectTimeout = 10 * time.Second
	healthTimeout         = 2 * time.Second
)

// Options describes the pool behind every PostgreSQL-backed store.
type Options struct {
	URL            string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
	// SkipMigrations leaves the schema alone, for databases managed elsewhere.
	SkipMigrations bool
}

type DB struct {
	Pool *pgxpool.Pool
}

// Open connects, verifies the connection and brings the schema up to date.
func Open(ctx context.Context, opts Options) (*DB, error) {
	cfg, err := poolConfig(opts)
	if err != nil {
		return nil, err
	}

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{Pool: pool}
	if !opts.SkipMigrations {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	slog.Info("database ready",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
		"migrated", !opts.SkipMigrations,
	)
	return db, nil
}

func poolConfig(opts Options) (*pgxpool.Config, error) {
	if opts.MaxConns <= 0 || opts.MinConns < 0 || opts.MinConns > opts.MaxConns {
		return nil, fmt.Errorf("invalid pool size: min=%d max=%d", opts.MinConns, opts.MaxConns)
	}

	cfg, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	cfg.MaxConns = opts.MaxConns
	cfg.MinConns = opts.MinConns
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return cfg, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health reports whether requests can be authenticated: the pool answers and
// the revocation ledger table is readable. Every guarded route depends on it.
func (db *DB) Health(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if _, err := db.Pool.Exec(ctx, `SELECT 1 FROM token_blacklist LIMIT 1`); err != nil {
		return fmt.Errorf("revocation ledger unavailable: %w", err)
	}
	return nil
}
