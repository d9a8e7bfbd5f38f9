package queries

import (
	"context"
	"time"

	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=book_request.go -destination=../../../tests/mock/queries/book_request.go -package=queriesmock

type BookRequestFilter struct {
	UserID *uuid.UUID
	Status bookrequest.Status
}

type BookRequestReadStore interface {
	List(ctx context.Context, filter BookRequestFilter, after *Keyset, limit int) ([]*BookRequestView, error)
}

type BookRequestQueries interface {
	List(ctx context.Context, actor user.Actor, filter BookRequestFilter, cursor *Cursor, limit int) ([]*BookRequestView, *Cursor, error)
}

type bookRequestQueriesImpl struct {
	store BookRequestReadStore
}

func NewBookRequestQueries(store BookRequestReadStore) BookRequestQueries {
	return &bookRequestQueriesImpl{store: store}
}

func (q *bookRequestQueriesImpl) List(ctx context.Context, actor user.Actor, filter BookRequestFilter, cursor *Cursor, limit int) ([]*BookRequestView, *Cursor, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, nil, bookrequest.ErrInvalidStatus
	}
	after, err := keysetFrom(cursor)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsStaff() {
		filter.UserID = &actor.ID
	}
	limit = ValidateLimit(limit)

	rows, err := q.store.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, infra.Translate(err, nil)
	}
	items, next := page(rows, limit, func(v *BookRequestView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return items, next, nil
}
