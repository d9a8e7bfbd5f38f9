//go:build unit

package repository_test

import (
	"context"
	"testing"

	"library-lending/internal/infra"
	"library-lending/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner marks the notification read", func(t *testing.T) {
		db := &fakeDBTX{tag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewNotificationRepository()

		require.NoError(t, repo.MarkRead(ctx, db, uuid.New(), uuid.New()))
		assert.Contains(t, db.lastSQL, `"user_id" =`)
	})

	t.Run("error: someone else's notification is reported missing", func(t *testing.T) {
		db := &fakeDBTX{tag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewNotificationRepository()

		err := repo.MarkRead(ctx, db, uuid.New(), uuid.New())

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db := &fakeDBTX{tag: pgconn.NewCommandTag("UPDATE 4")}
	repo := repository.NewNotificationRepository()

	n, err := repo.MarkAllRead(context.Background(), db, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
