package commands

import (
	"context"

	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/commands/notification.go -package=commandsmock

// NotificationCommands only flips is_read; notifications are never edited or deleted.
type NotificationCommands interface {
	MarkRead(ctx context.Context, actor user.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor user.Actor) (int64, error)
}

type notificationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationUseCase(uow shared.UnitOfWork) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow}
}

func (uc *notificationUseCaseImpl) MarkRead(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	return uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		return infra.Translate(tx.Notifications().MarkRead(ctx, tx.DB(), id, actor.ID), notification.ErrNotificationNotFound)
	})
}

func (uc *notificationUseCaseImpl) MarkAllRead(ctx context.Context, actor user.Actor) (int64, error) {
	var n int64
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		marked, err := tx.Notifications().MarkAllRead(ctx, tx.DB(), actor.ID)
		if err != nil {
			return infra.Translate(err, nil)
		}
		n = marked
		return nil
	})
	return n, err
}
