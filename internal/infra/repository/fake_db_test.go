//go:build unit

package repository_test

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeDBTX struct {
	lastSQL  string
	lastArgs []any

	tag    pgconn.CommandTag
	row    pgx.Row
	execFn func() error
}

func (m *fakeDBTX) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	m.lastSQL, m.lastArgs = sql, arguments
	if m.execFn != nil {
		if err := m.execFn(); err != nil {
			return pgconn.CommandTag{}, err
		}
	}
	return m.tag, nil
}

func (m *fakeDBTX) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("fakeDBTX.Query was called unexpectedly")
}

func (m *fakeDBTX) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL, m.lastArgs = sql, args
	return m.row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}
