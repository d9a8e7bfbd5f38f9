package readstore

import (
	"context"

	"library-lending/internal/infra"
	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type NotificationReadStore struct {
	db shared.DBTX
}

func NewNotificationReadStore(db shared.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

func (s *NotificationReadStore) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, after *queries.Keyset, limit int) ([]*queries.NotificationView, error) {
	return selectAll[queries.NotificationView](ctx, s.db, listNotificationsQuery(userID, unreadOnly, after, limit), "notifications")
}

func listNotificationsQuery(userID uuid.UUID, unreadOnly bool, after *queries.Keyset, limit int) *goqu.SelectDataset {
	ds := pg.From("notifications").Prepared(true).
		Select("id", "kind", "message", "is_read", "created_at").
		Where(goqu.C("user_id").Eq(userID))
	if unreadOnly {
		ds = ds.Where(goqu.C("is_read").IsFalse())
	}
	if after != nil {
		ds = ds.Where(keysetBefore("created_at", "id", after))
	}
	return ds.Order(goqu.C("created_at").Desc(), goqu.C("id").Desc()).Limit(uint(limit))
}

func (s *NotificationReadStore) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := pg.From("notifications").Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("user_id").Eq(userID), goqu.C("is_read").IsFalse()).
		ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build unread count", err, infra.KindDBFailure)
	}
	var n int
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return n, nil
}
