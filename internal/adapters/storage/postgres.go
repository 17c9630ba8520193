package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/stackit/internal/domain"
	"github.com/jsamuelsen/stackit/internal/ports"
)

const (
	pgCreateTable = `CREATE TABLE IF NOT EXISTS kv_store (
	key        text PRIMARY KEY,
	value      text NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now()
)`

	pgSelect = `SELECT value FROM kv_store WHERE key = $1`

	pgUpsert = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	pgDelete = `DELETE FROM kv_store WHERE key = $1`
)

// PostgresStore keeps values in the kv_store table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ ports.KeyValueStore = (*PostgresStore)(nil)
	_ ports.HealthChecker = (*PostgresStore)(nil)
)

// NewPostgresStore opens a connection pool, verifies it and creates the
// kv_store table when missing. maxConns <= 0 keeps the pgx default.
func NewPostgresStore(ctx context.Context, databaseURL string, maxConns int32) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, pgCreateTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get returns the value for key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var v string

	err := s.pool.QueryRow(ctx, pgSelect, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.NewNotFoundError("key", key)
	}

	if err != nil {
		return "", fmt.Errorf("select %q: %w", key, err)
	}

	return v, nil
}

// Set upserts value under key.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.pool.Exec(ctx, pgUpsert, key, value); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, pgDelete, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Close closes every connection in the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Name implements ports.HealthChecker.
func (s *PostgresStore) Name() string {
	return "storage-postgres"
}

// Check pings the database.
func (s *PostgresStore) Check(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
