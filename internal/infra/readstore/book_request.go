package readstore

import (
	"context"

	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
)

type BookRequestReadStore struct {
	db shared.DBTX
}

func NewBookRequestReadStore(db shared.DBTX) *BookRequestReadStore {
	return &BookRequestReadStore{db: db}
}

func (s *BookRequestReadStore) List(ctx context.Context, filter queries.BookRequestFilter, after *queries.Keyset, limit int) ([]*queries.BookRequestView, error) {
	ds := pg.From("book_requests").Prepared(true).
		Select("id", "user_id", "title", "author", "edition", "category", "status", "created_at")
	if filter.UserID != nil {
		ds = ds.Where(goqu.C("user_id").Eq(*filter.UserID))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(filter.Status.String()))
	}
	if after != nil {
		ds = ds.Where(keysetBefore("created_at", "id", after))
	}
	ds = ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).Limit(uint(limit))
	return selectAll[queries.BookRequestView](ctx, s.db, ds, "book requests")
}
