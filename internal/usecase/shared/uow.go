package shared

import (
	"context"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: every statement commits on its own. Used for the guarded copy-count steps
	// and their compensations, which must be visible independently of the ledger step.
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Books() BookRepository
	Loans() LoanRepository
	Reservations() ReservationRepository
	BookRequests() BookRequestRepository
	Notifications() NotificationRepository
	DB() DBTX
}

type BookRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*book.Book, error)
	// LockByID is FindByID with FOR UPDATE; inside Within it holds the row until commit,
	// so concurrent loan inserts referencing the book wait for the caller.
	LockByID(ctx context.Context, db DBTX, id uuid.UUID) (*book.Book, error)
	FindByISBN(ctx context.Context, db DBTX, isbn book.ISBN) (*book.Book, error)
	Create(ctx context.Context, db DBTX, b *book.Book) error
	// Update writes the descriptive fields; copies only when withCopies is set so that an
	// edit never overwrites a concurrent issue or return.
	Update(ctx context.Context, db DBTX, b *book.Book, withCopies bool) error
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
	// DecrementCopies runs copies = copies - 1 WHERE copies > 0 and returns the new count.
	// A miss (unknown id or no copies) is reported as infra.KindConditionFailed.
	DecrementCopies(ctx context.Context, db DBTX, id uuid.UUID) (int, error)
	IncrementCopies(ctx context.Context, db DBTX, id uuid.UUID, delta int) (int, error)
}

type LoanRepository interface {
	Create(ctx context.Context, db DBTX, l *loan.Loan) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*loan.Loan, error)
	HasOpenLoan(ctx context.Context, db DBTX, bookID, userID uuid.UUID) (bool, error)
	CountOpenByBook(ctx context.Context, db DBTX, bookID uuid.UUID) (int, error)
	// SaveTransition persists the return fields of l only while the stored loan is still
	// open with return_request = from.
	SaveTransition(ctx context.Context, db DBTX, l *loan.Loan, from loan.ReturnRequest) error
	MarkReserved(ctx context.Context, db DBTX, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, db DBTX, r *reservation.Reservation) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*reservation.Reservation, error)
	HasPending(ctx context.Context, db DBTX, bookID, userID uuid.UUID) (bool, error)
	// SaveResolution applies the new status only while the stored one is still pending.
	SaveResolution(ctx context.Context, db DBTX, r *reservation.Reservation) error
}

type BookRequestRepository interface {
	Create(ctx context.Context, db DBTX, r *bookrequest.BookRequest) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*bookrequest.BookRequest, error)
	SaveResolution(ctx context.Context, db DBTX, r *bookrequest.BookRequest) error
}

type NotificationRepository interface {
	Create(ctx context.Context, db DBTX, n *notification.Notification) error
	MarkRead(ctx context.Context, db DBTX, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
}
