package queries

import (
	"context"
	"strings"
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=book.go -destination=../../../tests/mock/queries/book.go -package=queriesmock

type BookFilter struct {
	Search        string
	Genre         string
	AvailableOnly bool
}

type BookReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context, filter BookFilter, after *Keyset, limit int) ([]*BookView, error)
}

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context, filter BookFilter, cursor *Cursor, limit int) ([]*BookView, *Cursor, error)
}

type bookQueriesImpl struct {
	store BookReadStore
}

func NewBookQueries(store BookReadStore) BookQueries {
	return &bookQueriesImpl{store: store}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, infra.Translate(err, book.ErrBookNotFound)
	}
	return v, nil
}

func (q *bookQueriesImpl) List(ctx context.Context, filter BookFilter, cursor *Cursor, limit int) ([]*BookView, *Cursor, error) {
	after, err := keysetFrom(cursor)
	if err != nil {
		return nil, nil, err
	}
	limit = ValidateLimit(limit)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Genre = strings.TrimSpace(filter.Genre)

	rows, err := q.store.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, infra.Translate(err, nil)
	}
	items, next := page(rows, limit, func(v *BookView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return items, next, nil
}
