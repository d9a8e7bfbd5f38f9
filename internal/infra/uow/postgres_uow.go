package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"library-lending/internal/infra/repository"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// RetryPolicy bounds how often a write transaction is replayed after a
// serialization failure, deadlock or lock timeout.
type RetryPolicy struct {
	MaxRetries  int
	Base        time.Duration
	LockTimeout time.Duration
}

func NewRetryPolicy(cfg config.DBConfig) RetryPolicy {
	return RetryPolicy{MaxRetries: cfg.TxMaxRetries, Base: cfg.TxRetryBase, LockTimeout: cfg.LockTimeout}
}

// backoff doubles per attempt and adds up to 20% jitter.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := time.Duration(1<<attempt) * p.Base
	if jitter := int64(wait / 5); jitter > 0 {
		wait += time.Duration(rand.Int64N(jitter))
	}
	return wait
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	policy RetryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, policy RetryPolicy) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, policy: policy}
}

// Within runs fn in a READ COMMITTED transaction. The closure may run more than once.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = u.attempt(ctx, fn)
		if err == nil || !isRetryableError(err) {
			return err
		}
		if attempt >= u.policy.MaxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(errs.Mark(err, errMaxRetriesExceeded), errs.ErrUnavailable)
		}

		wait := u.policy.backoff(attempt)
		slog.Warn("retrying transaction", "attempt", attempt+1, "wait_ms", wait.Milliseconds(), "error", err.Error())

		select {
		case <-ctx.Done():
			return errs.Mark(ctx.Err(), errs.ErrUnavailable)
		case <-time.After(wait):
		}
	}
}

// WithDB hands fn the pool itself, so each statement commits on its own.
func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &pgTx{dbtx: u.pool})
}

func (u *PostgresUoW) attempt(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) (err error) {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(errs.Mark(err, errTransactionBegin), errs.ErrUnavailable)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if u.policy.LockTimeout > 0 {
		// SET does not take bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", u.policy.LockTimeout.Milliseconds())
		if _, err = pgxTx.Exec(ctx, stmt); err != nil {
			return errs.Mark(err, errs.ErrUnavailable)
		}
	}

	if err = fn(ctx, &pgTx{dbtx: pgxTx}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(errs.Mark(err, errTransactionCommit), errs.ErrUnavailable)
	}
	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}

// pgTx binds the repositories to either a pgx.Tx or the pool itself.
type pgTx struct {
	dbtx shared.DBTX

	books         shared.BookRepository
	loans         shared.LoanRepository
	reservations  shared.ReservationRepository
	bookRequests  shared.BookRequestRepository
	notifications shared.NotificationRepository
}

func (t *pgTx) DB() shared.DBTX {
	return t.dbtx
}

func (t *pgTx) Books() shared.BookRepository {
	if t.books == nil {
		t.books = repository.NewBookRepository()
	}
	return t.books
}

func (t *pgTx) Loans() shared.LoanRepository {
	if t.loans == nil {
		t.loans = repository.NewLoanRepository()
	}
	return t.loans
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservations == nil {
		t.reservations = repository.NewReservationRepository()
	}
	return t.reservations
}

func (t *pgTx) BookRequests() shared.BookRequestRepository {
	if t.bookRequests == nil {
		t.bookRequests = repository.NewBookRequestRepository()
	}
	return t.bookRequests
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notifications == nil {
		t.notifications = repository.NewNotificationRepository()
	}
	return t.notifications
}
