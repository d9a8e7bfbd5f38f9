package readstore

import (
	"context"
	"strings"

	"library-lending/internal/domain/book"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type BookReadStore struct {
	db shared.DBTX
}

func NewBookReadStore(db shared.DBTX) *BookReadStore {
	return &BookReadStore{db: db}
}

func bookSelect() *goqu.SelectDataset {
	return pg.From("books").Prepared(true).Select(
		"id", "isbn", "title", "author", "genre", "language", "edition", "cover_url", "copies", "created_at", "updated_at",
	)
}

func (s *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	return selectOne[queries.BookView](ctx, s.db, bookSelect().Where(goqu.C("id").Eq(id)), "book")
}

func (s *BookReadStore) List(ctx context.Context, filter queries.BookFilter, after *queries.Keyset, limit int) ([]*queries.BookView, error) {
	return selectAll[queries.BookView](ctx, s.db, listBooksQuery(filter, after, limit), "books")
}

func listBooksQuery(filter queries.BookFilter, after *queries.Keyset, limit int) *goqu.SelectDataset {
	ds := bookSelect()
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("title").ILike(pattern),
			goqu.C("author").ILike(pattern),
			goqu.C("isbn").Eq(book.NormalizeISBN(filter.Search).String()),
		))
	}
	if filter.Genre != "" {
		ds = ds.Where(goqu.C("genre").ILike(escapeLike(filter.Genre)))
	}
	if filter.AvailableOnly {
		ds = ds.Where(goqu.C("copies").Gt(0))
	}
	if after != nil {
		ds = ds.Where(keysetBefore("created_at", "id", after))
	}
	return ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).Limit(uint(limit))
}

// backslash is the default LIKE escape in postgres
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
