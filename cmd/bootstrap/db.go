package bootstrap

import (
	"context"
	"log/slog"

	"library-lending/internal/infra/db"
	"library-lending/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB opens the pool eagerly so a bad DSN fails fx startup instead of the first request.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.DB.ConnectTimeout)
	defer cancel()

	pool, closePool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			logger.Info("データベース接続完了",
				"host", cfg.DB.Host,
				"database", cfg.DB.DBName,
				"max_conns", cfg.DB.MaxConns)
			return nil
		},
		OnStop: func(context.Context) error {
			stat := pool.Stat()
			logger.Info("データベース接続を閉じます", "acquired", stat.AcquiredConns(), "total", stat.TotalConns())
			closePool()
			return nil
		},
	})

	return pool, nil
}
