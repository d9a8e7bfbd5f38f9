package db

import (
	"context"
	"log/slog"

	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to parse database config")
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to open database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, errs.Wrap(err, "failed to ping database")
	}

	cleanup := func() {
		pool.Close()
		slog.Info("database pool closed")
	}

	return pool, cleanup, nil
}
