//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"library-lending/internal/domain/loan"
	"library-lending/internal/infra"
	"library-lending/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRepository_SaveTransition(t *testing.T) {
	ctx := context.Background()
	l := loan.NewLoan(loan.DefaultPolicy(), uuid.New(), uuid.New(), time.Now())
	require.NoError(t, l.RequestReturn())

	testCases := []struct {
		name       string
		tag        pgconn.CommandTag
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: guarded row updated",
			tag:  pgconn.NewCommandTag("UPDATE 1"),
		},
		{
			name:       "error: loan moved on before the update",
			tag:        pgconn.NewCommandTag("UPDATE 0"),
			expectKind: infra.KindConditionFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &fakeDBTX{tag: tc.tag}
			repo := repository.NewLoanRepository()

			err := repo.SaveTransition(ctx, db, l, loan.ReturnRequestNone)

			assert.Contains(t, db.lastSQL, `"return_request" =`)
			assert.Contains(t, db.lastSQL, `"returned" IS FALSE`)
			assert.Contains(t, db.lastArgs, "none")
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoanRepository_HasOpenLoan(t *testing.T) {
	db := &fakeDBTX{row: fakeRow{values: []any{1}}}
	repo := repository.NewLoanRepository()

	open, err := repo.HasOpenLoan(context.Background(), db, uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.True(t, open)
	assert.Contains(t, db.lastSQL, "COUNT(*)")
}
