package infra

import (
	"context"
	"errors"
	"log/slog"

	"library-lending/internal/pkg/errs"
	"library-lending/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// A guarded statement matched no row because its precondition no longer holds.
	KindConditionFailed RepositoryErrorKind = "CONDITION_FAILED"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
	pgErrCodeNumericOutOfRange   = "22003"
)

// WrapRepoErr classifies err by its PostgreSQL error code unless an explicit kind is given.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := classify(err)
	if len(kind) > 0 {
		k = kind[0]
	}

	if k == KindDBFailure {
		slog.Error("Repository error: "+msg, slog.String("kind", string(k)), slog.Any("error", err))
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: k, msg: msg, err: err}
}

func classify(err error) RepositoryErrorKind {
	if err == nil {
		return KindDBFailure
	}
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			return KindForeignKeyViolated
		case pgErrCodeCheckViolation, pgErrCodeNumericOutOfRange:
			return KindConditionFailed
		}
	}
	return KindDBFailure
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Translate maps a repository error onto the service error categories. notFound replaces
// KindNotFound; store failures and timeouts become errs.ErrUnavailable.
func Translate(err error, notFound error) error {
	if err == nil {
		return nil
	}
	var e RepositoryError
	if !errors.As(err, &e) {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.Mark(err, errs.ErrUnavailable)
		}
		return err
	}
	switch e.Kind {
	case KindNotFound:
		if notFound != nil {
			return notFound
		}
		return errs.Mark(err, errs.ErrNotFound)
	case KindDuplicateKey:
		return errs.Mark(err, errs.ErrDuplicate)
	case KindForeignKeyViolated:
		return errs.Mark(err, errs.ErrNotFound)
	case KindConditionFailed:
		return errs.Mark(err, errs.ErrInvalidState)
	default:
		return errs.Mark(err, errs.ErrUnavailable)
	}
}
