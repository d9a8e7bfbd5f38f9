package queries

import (
	"context"
	"time"

	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=loan.go -destination=../../../tests/mock/queries/loan.go -package=queriesmock

type LoanStatusFilter string

const (
	LoanStatusAll             LoanStatusFilter = ""
	LoanStatusOpen            LoanStatusFilter = "open"
	LoanStatusReturnRequested LoanStatusFilter = "return_requested"
	LoanStatusReturned        LoanStatusFilter = "returned"
	LoanStatusOverdue         LoanStatusFilter = "overdue"
)

var ErrInvalidLoanStatus = errs.Wrap(errs.ErrValidation, "invalid loan status filter")

func (s LoanStatusFilter) IsValid() bool {
	switch s {
	case LoanStatusAll, LoanStatusOpen, LoanStatusReturnRequested, LoanStatusReturned, LoanStatusOverdue:
		return true
	}
	return false
}

type LoanFilter struct {
	UserID *uuid.UUID
	BookID *uuid.UUID
	Status LoanStatusFilter
	// Now is the reference time for the overdue filter.
	Now time.Time
}

type LoanReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	List(ctx context.Context, filter LoanFilter, after *Keyset, limit int) ([]*LoanView, error)
}

type LoanQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*LoanView, error)
	List(ctx context.Context, actor user.Actor, filter LoanFilter, cursor *Cursor, limit int) ([]*LoanView, *Cursor, error)
}

type loanQueriesImpl struct {
	store LoanReadStore
	clock clock.Clock
}

func NewLoanQueries(store LoanReadStore, clk clock.Clock) LoanQueries {
	return &loanQueriesImpl{store: store, clock: clk}
}

func (q *loanQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*LoanView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, infra.Translate(err, loan.ErrLoanNotFound)
	}
	if !actor.CanActFor(v.UserID) {
		return nil, loan.ErrNotHolder
	}
	q.decorate(v, q.clock.Now())
	return v, nil
}

// List restricts members to their own loans; staff may filter by any user.
func (q *loanQueriesImpl) List(ctx context.Context, actor user.Actor, filter LoanFilter, cursor *Cursor, limit int) ([]*LoanView, *Cursor, error) {
	if !filter.Status.IsValid() {
		return nil, nil, ErrInvalidLoanStatus
	}
	after, err := keysetFrom(cursor)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsStaff() {
		filter.UserID = &actor.ID
	}
	limit = ValidateLimit(limit)
	now := q.clock.Now()
	filter.Now = now

	rows, err := q.store.List(ctx, filter, after, limit+1)
	if err != nil {
		return nil, nil, infra.Translate(err, nil)
	}
	items, next := page(rows, limit, func(v *LoanView) (time.Time, uuid.UUID) { return v.IssueDate, v.ID })
	for _, v := range items {
		q.decorate(v, now)
	}
	return items, next, nil
}

func (q *loanQueriesImpl) decorate(v *LoanView, now time.Time) {
	l := loan.ReconstructLoan(v.ID, v.BookID, v.UserID, v.IssueDate, v.DueDate, v.Returned, v.ReturnDate,
		loan.ReturnRequest(v.ReturnRequest), v.LateFee, v.Reserved)
	v.State = string(l.State())
	v.Overdue = l.IsOverdue(now)
}
