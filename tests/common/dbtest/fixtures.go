//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SystemLibrarianID is the profile seeded by SeedReferenceData.
var SystemLibrarianID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// CreateTestUser inserts a profile into the identity mirror. An existing email keeps its id.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	name, _, _ := strings.Cut(email, "@")
	err := db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, role) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING id`, userID, name, email, role).Scan(&userID)
	require.NoError(t, err)

	return userID
}

func CreateTestBook(t *testing.T, db DBLike, isbn, title string, copies int) uuid.UUID {
	t.Helper()

	var isbnArg any
	if isbn != "" {
		isbnArg = isbn
	}

	var bookID uuid.UUID
	err := db.QueryRow(context.Background(), `
		INSERT INTO books (isbn, title, author, copies) VALUES ($1, $2, 'Test Author', $3)
		RETURNING id`, isbnArg, title, copies).Scan(&bookID)
	require.NoError(t, err)

	return bookID
}

func BookCopies(t *testing.T, db DBLike, bookID uuid.UUID) int {
	t.Helper()

	var copies int
	err := db.QueryRow(context.Background(), "SELECT copies FROM books WHERE id = $1", bookID).Scan(&copies)
	require.NoError(t, err)
	return copies
}

func BookExists(t *testing.T, db DBLike, bookID uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(), "SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)", bookID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func OpenLoanCount(t *testing.T, db DBLike, bookID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM issued_books WHERE book_id = $1 AND NOT returned", bookID).Scan(&n)
	require.NoError(t, err)
	return n
}

func NotificationCount(t *testing.T, db DBLike, userID uuid.UUID, kind string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notifications WHERE user_id = $1 AND kind = $2", userID, kind).Scan(&n)
	require.NoError(t, err)
	return n
}

// NotificationKinds lists a user's notification kinds, newest first.
func NotificationKinds(t *testing.T, db DBLike, userID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT kind FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	require.NoError(t, err)
	kinds, err := pgx.CollectRows(rows, pgx.RowTo[string])
	require.NoError(t, err)
	return kinds
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, role) VALUES
		    ($1, 'System Librarian', 'librarian@library.test', 'librarian')
		ON CONFLICT (id) DO NOTHING;
	`, SystemLibrarianID)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
