package readstore

import (
	"context"

	"library-lending/internal/infra"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
)

var pg = goqu.Dialect("postgres")

// keysetBefore pages newest-first on (at, id).
func keysetBefore(atCol, idCol string, after *queries.Keyset) exp.Expression {
	return goqu.L("("+atCol+", "+idCol+") < (?, ?)", after.At, after.ID)
}

func selectAll[T any](ctx context.Context, db shared.DBTX, ds *goqu.SelectDataset, what string) ([]*T, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build "+what+" query", err, infra.KindDBFailure)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list "+what, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan "+what, err)
	}
	return out, nil
}

func selectOne[T any](ctx context.Context, db shared.DBTX, ds *goqu.SelectDataset, what string) (*T, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build "+what+" query", err, infra.KindDBFailure)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find "+what, err)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find "+what, err)
	}
	return out, nil
}
