package repository

import (
	"context"
	"time"

	"library-lending/internal/domain/loan"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var loanColumns = []any{
	"id", "book_id", "user_id", "issue_date", "due_date", "returned", "return_date", "return_request", "late_fee", "reserved",
}

type LoanRepository struct{}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

func (r *LoanRepository) Create(ctx context.Context, db shared.DBTX, l *loan.Loan) error {
	_, err := execStmt(ctx, db, pg.Insert(tableLoans).Prepared(true).Rows(goqu.Record{
		"id":             l.ID(),
		"book_id":        l.BookID(),
		"user_id":        l.UserID(),
		"issue_date":     l.IssueDate(),
		"due_date":       l.DueDate(),
		"returned":       l.Returned(),
		"return_date":    pgconv.TimePtrToPgtype(l.ReturnDate()),
		"return_request": l.ReturnRequest().String(),
		"late_fee":       l.LateFee(),
		"reserved":       l.Reserved(),
	}))
	if err != nil {
		return infra.WrapRepoErr("failed to create loan", err)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, db shared.DBTX, id uuid.UUID) (*loan.Loan, error) {
	row, err := queryRow(ctx, db, pg.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build loan query", err, infra.KindDBFailure)
	}
	l, err := scanLoan(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find loan", err)
	}
	return l, nil
}

func (r *LoanRepository) HasOpenLoan(ctx context.Context, db shared.DBTX, bookID, userID uuid.UUID) (bool, error) {
	n, err := r.countOpen(ctx, db, goqu.C("book_id").Eq(bookID), goqu.C("user_id").Eq(userID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LoanRepository) CountOpenByBook(ctx context.Context, db shared.DBTX, bookID uuid.UUID) (int, error) {
	return r.countOpen(ctx, db, goqu.C("book_id").Eq(bookID))
}

func (r *LoanRepository) countOpen(ctx context.Context, db shared.DBTX, filters ...goqu.Expression) (int, error) {
	filters = append(filters, goqu.C("returned").IsFalse())
	row, err := queryRow(ctx, db, pg.From(tableLoans).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(filters...))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build loan count", err, infra.KindDBFailure)
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count open loans", err)
	}
	return n, nil
}

func (r *LoanRepository) SaveTransition(ctx context.Context, db shared.DBTX, l *loan.Loan, from loan.ReturnRequest) error {
	tag, err := execStmt(ctx, db, pg.Update(tableLoans).Prepared(true).
		Set(goqu.Record{
			"returned":       l.Returned(),
			"return_date":    pgconv.TimePtrToPgtype(l.ReturnDate()),
			"return_request": l.ReturnRequest().String(),
			"late_fee":       l.LateFee(),
		}).
		Where(
			goqu.C("id").Eq(l.ID()),
			goqu.C("returned").IsFalse(),
			goqu.C("return_request").Eq(from.String()),
		))
	if err != nil {
		return infra.WrapRepoErr("failed to update loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan changed concurrently", nil, infra.KindConditionFailed)
	}
	return nil
}

func (r *LoanRepository) MarkReserved(ctx context.Context, db shared.DBTX, id uuid.UUID) error {
	tag, err := execStmt(ctx, db, pg.Update(tableLoans).Prepared(true).
		Set(goqu.Record{"reserved": true}).
		Where(goqu.C("id").Eq(id), goqu.C("returned").IsFalse()))
	if err != nil {
		return infra.WrapRepoErr("failed to mark loan reserved", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan closed concurrently", nil, infra.KindConditionFailed)
	}
	return nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var (
		id, bookID, userID uuid.UUID
		issueDate, dueDate time.Time
		returned, reserved bool
		returnDate         pgtype.Timestamptz
		returnRequest      string
		lateFee            int64
	)
	if err := row.Scan(&id, &bookID, &userID, &issueDate, &dueDate, &returned, &returnDate,
		&returnRequest, &lateFee, &reserved); err != nil {
		return nil, err
	}
	return loan.ReconstructLoan(id, bookID, userID, issueDate, dueDate, returned,
		pgconv.TimePtrFromPgtype(returnDate), loan.ReturnRequest(returnRequest), lateFee, reserved), nil
}
