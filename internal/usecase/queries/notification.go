package queries

import (
	"context"
	"time"

	"library-lending/internal/domain/user"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/queries/notification.go -package=queriesmock

type NotificationReadStore interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, after *Keyset, limit int) ([]*NotificationView, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type NotificationPage struct {
	Items       []*NotificationView
	Next        *Cursor
	UnreadCount int
}

type NotificationQueries interface {
	List(ctx context.Context, actor user.Actor, unreadOnly bool, cursor *Cursor, limit int) (*NotificationPage, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
}

func NewNotificationQueries(store NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{store: store}
}

// List only ever returns the actor's own notifications, staff included.
func (q *notificationQueriesImpl) List(ctx context.Context, actor user.Actor, unreadOnly bool, cursor *Cursor, limit int) (*NotificationPage, error) {
	after, err := keysetFrom(cursor)
	if err != nil {
		return nil, err
	}
	limit = ValidateLimit(limit)

	rows, err := q.store.List(ctx, actor.ID, unreadOnly, after, limit+1)
	if err != nil {
		return nil, infra.Translate(err, nil)
	}
	unread, err := q.store.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, infra.Translate(err, nil)
	}

	items, next := page(rows, limit, func(v *NotificationView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return &NotificationPage{Items: items, Next: next, UnreadCount: unread}, nil
}
