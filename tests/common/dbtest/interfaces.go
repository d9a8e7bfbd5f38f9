//go:build unit || e2e

package dbtest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBLike is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so fixtures can
// run inside a test transaction as well as against the shared pool.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
