// Package database owns the PostgreSQL connection pool used by the
// postgres profile store and the migration runner.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the subset of pgxpool.Pool the storage layer depends on.
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolConfig tunes connection pool sizing and recycling.
type PoolConfig struct {
	MaxConns    int32
	MinConns    int32
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// DefaultPoolConfig returns the sizing used when no overrides are set.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:    DefaultMaxConnections,
		MinConns:    DefaultMinConnections,
		MaxIdleTime: DefaultMaxIdleTime,
		MaxLifetime: DefaultMaxLifetime,
	}
}

// normalize fills non-positive fields from the defaults so a partially
// configured pool still gets sane limits.
func (pc PoolConfig) normalize() PoolConfig {
	def := DefaultPoolConfig()
	if pc.MaxConns <= 0 {
		pc.MaxConns = def.MaxConns
	}
	if pc.MinConns <= 0 || pc.MinConns > pc.MaxConns {
		pc.MinConns = min(def.MinConns, pc.MaxConns)
	}
	if pc.MaxIdleTime <= 0 {
		pc.MaxIdleTime = def.MaxIdleTime
	}
	if pc.MaxLifetime <= 0 {
		pc.MaxLifetime = def.MaxLifetime
	}
	return pc
}

// NewPool opens a PostgreSQL connection pool and verifies it with a
// ping before handing it to the caller.
func NewPool(ctx context.Context, connString string, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseConnString, err)
	}

	pc = pc.normalize()
	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = pc.MinConns
	cfg.MaxConnIdleTime = pc.MaxIdleTime
	cfg.MaxConnLifetime = pc.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgPingDatabase, err)
	}

	slog.Default().Info(LogMsgDatabaseConnected,
		"max_conns", pc.MaxConns,
		"min_conns", pc.MinConns,
	)
	return pool, nil
}
