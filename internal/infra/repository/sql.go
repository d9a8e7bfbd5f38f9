package repository

import (
	"context"

	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	tableBooks         = "books"
	tableLoans         = "issued_books"
	tableReservations  = "reservations"
	tableBookRequests  = "book_requests"
	tableNotifications = "notifications"
)

var pg = goqu.Dialect("postgres")

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func execStmt(ctx context.Context, db shared.DBTX, b sqlBuilder) (pgconn.CommandTag, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return db.Exec(ctx, query, args...)
}

func queryRow(ctx context.Context, db shared.DBTX, b sqlBuilder) (pgx.Row, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.QueryRow(ctx, query, args...), nil
}
