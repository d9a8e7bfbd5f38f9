package readstore

import (
	"context"

	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
)

type ReservationReadStore struct {
	db shared.DBTX
}

func NewReservationReadStore(db shared.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (s *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter, after *queries.Keyset, limit int) ([]*queries.ReservationView, error) {
	return selectAll[queries.ReservationView](ctx, s.db, listReservationsQuery(filter, after, limit), "reservations")
}

func listReservationsQuery(filter queries.ReservationFilter, after *queries.Keyset, limit int) *goqu.SelectDataset {
	ds := pg.From(goqu.T("reservations").As("r")).Prepared(true).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("r.book_id").Eq(goqu.I("b.id")))).
		Select(
			goqu.I("r.id"), goqu.I("r.book_id"), goqu.I("b.title").As("book_title"), goqu.I("r.loan_id"),
			goqu.I("r.reserved_to"), goqu.I("r.status"), goqu.I("r.reserved_at"), goqu.I("r.resolved_at"),
		)
	if filter.UserID != nil {
		ds = ds.Where(goqu.I("r.reserved_to").Eq(*filter.UserID))
	}
	if filter.BookID != nil {
		ds = ds.Where(goqu.I("r.book_id").Eq(*filter.BookID))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.I("r.status").Eq(filter.Status.String()))
	}
	if after != nil {
		ds = ds.Where(keysetBefore("r.reserved_at", "r.id", after))
	}
	return ds.Order(goqu.I("r.reserved_at").Desc(), goqu.I("r.id").Desc()).Limit(uint(limit))
}
