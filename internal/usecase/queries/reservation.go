package queries

import (
	"context"
	"time"

	"library-lending/internal/domain/reservation"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

type ReservationFilter struct {
	UserID *uuid.UUID
	BookID *uuid.UUID
	Status reservation.Status
}

type ReservationReadStore interface {
	List(ctx context.Context, filter ReservationFilter, after *Keyset, limit int) ([]*ReservationView, error)
}

type ReservationQueries interface {
	List(ctx context.Context, actor user.Actor, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) List(ctx context.Context, actor user.Actor, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, nil, reservation.ErrInvalidStatus
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
	items, next := page(rows, limit, func(v *ReservationView) (time.Time, uuid.UUID) { return v.ReservedAt, v.ID })
	return items, next, nil
}
