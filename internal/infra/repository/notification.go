package repository

import (
	"context"

	"library-lending/internal/domain/notification"
	"library-lending/internal/infra"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, db shared.DBTX, n *notification.Notification) error {
	_, err := execStmt(ctx, db, pg.Insert(tableNotifications).Prepared(true).Rows(goqu.Record{
		"id":         n.ID(),
		"user_id":    n.UserID(),
		"kind":       string(n.Kind()),
		"message":    n.Message(),
		"is_read":    n.IsRead(),
		"created_at": n.CreatedAt(),
	}))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}

// MarkRead is scoped to the owner; another user's id reports not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, db shared.DBTX, id, userID uuid.UUID) error {
	tag, err := execStmt(ctx, db, pg.Update(tableNotifications).Prepared(true).
		Set(goqu.Record{"is_read": true}).
		Where(goqu.C("id").Eq(id), goqu.C("user_id").Eq(userID)))
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, db shared.DBTX, userID uuid.UUID) (int64, error) {
	tag, err := execStmt(ctx, db, pg.Update(tableNotifications).Prepared(true).
		Set(goqu.Record{"is_read": true}).
		Where(goqu.C("user_id").Eq(userID), goqu.C("is_read").IsFalse()))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}
