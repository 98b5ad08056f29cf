package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riordanpawley/quadrant/internal/domain"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Postgres stores keys in a single kv_store table
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres connects to connString, verifies the connection and creates
// the kv_store table when missing
func NewPostgres(ctx context.Context, connString string, logger *slog.Logger) (*Postgres, error) {
	if logger == nil {
		logger = slog.Default()
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}

	logger.Debug("postgres store ready", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)
	return &Postgres{pool: pool, logger: logger}, nil
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()

	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}

	p.logSlow("get", key, start)
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	start := time.Now()

	query := `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := p.pool.Exec(ctx, query, key, value); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}

	p.logSlow("set", key, start)
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Close releases all pooled connections
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) logSlow(op, key string, start time.Time) {
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		p.logger.Warn("slow storage operation", "op", op, "key", key, "elapsed", elapsed)
	}
}
