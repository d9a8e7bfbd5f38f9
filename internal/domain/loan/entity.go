package loan

import (
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLoanNotFound         = errs.Wrap(errs.ErrNotFound, "loan not found")
	ErrAlreadyReturned      = errs.Wrap(errs.ErrNotFound, "loan already returned")
	ErrReturnAlreadyPending = errs.Wrap(errs.ErrInvalidState, "return already requested")
	ErrReturnNotPending     = errs.Wrap(errs.ErrInvalidState, "no pending return request")
	ErrLoanClosed           = errs.Wrap(errs.ErrInvalidState, "loan is closed")
	ErrNotHolder            = errs.Wrap(errs.ErrForbidden, "loan belongs to another user")
	ErrDuplicateLoan        = errs.Wrap(errs.ErrDuplicate, "user already holds this book")
)

type Loan struct {
	id            uuid.UUID
	bookID        uuid.UUID
	userID        uuid.UUID
	issueDate     time.Time
	dueDate       time.Time
	returned      bool
	returnDate    *time.Time
	returnRequest ReturnRequest
	lateFee       int64
	reserved      bool
}

func NewLoan(policy Policy, bookID, userID uuid.UUID, now time.Time) *Loan {
	return &Loan{
		id:            uuid.New(),
		bookID:        bookID,
		userID:        userID,
		issueDate:     now,
		dueDate:       policy.DueDate(now),
		returnRequest: ReturnRequestNone,
	}
}

func ReconstructLoan(
	id, bookID, userID uuid.UUID,
	issueDate, dueDate time.Time,
	returned bool,
	returnDate *time.Time,
	returnRequest ReturnRequest,
	lateFee int64,
	reserved bool,
) *Loan {
	return &Loan{
		id:            id,
		bookID:        bookID,
		userID:        userID,
		issueDate:     issueDate,
		dueDate:       dueDate,
		returned:      returned,
		returnDate:    returnDate,
		returnRequest: returnRequest,
		lateFee:       lateFee,
		reserved:      reserved,
	}
}

func (l *Loan) State() State {
	switch {
	case l.returned:
		return StateReturned
	case l.returnRequest == ReturnRequestPending:
		return StateReturnRequested
	default:
		return StateIssued
	}
}

// RequestReturn moves an issued loan to return-requested. A previously rejected request
// may be raised again.
func (l *Loan) RequestReturn() error {
	if l.returned {
		return ErrAlreadyReturned
	}
	if l.returnRequest == ReturnRequestPending {
		return ErrReturnAlreadyPending
	}
	l.returnRequest = ReturnRequestPending
	return nil
}

// ApproveReturn closes the loan and returns the late fee charged.
func (l *Loan) ApproveReturn(policy Policy, now time.Time) (int64, error) {
	if l.returned {
		return 0, ErrLoanClosed
	}
	if l.returnRequest != ReturnRequestPending {
		return 0, ErrReturnNotPending
	}
	returnedAt := now
	l.lateFee = policy.LateFee(l.dueDate, returnedAt)
	l.returned = true
	l.returnDate = &returnedAt
	l.returnRequest = ReturnRequestApproved
	return l.lateFee, nil
}

// RejectReturn puts the loan back into the issued state with the rejection recorded.
func (l *Loan) RejectReturn() error {
	if l.returned {
		return ErrLoanClosed
	}
	if l.returnRequest != ReturnRequestPending {
		return ErrReturnNotPending
	}
	l.returnRequest = ReturnRequestRejected
	return nil
}

func (l *Loan) MarkReserved() error {
	if l.returned {
		return ErrLoanClosed
	}
	l.reserved = true
	return nil
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return !l.returned && now.After(l.dueDate)
}

func (l *Loan) ID() uuid.UUID                { return l.id }
func (l *Loan) BookID() uuid.UUID            { return l.bookID }
func (l *Loan) UserID() uuid.UUID            { return l.userID }
func (l *Loan) IssueDate() time.Time         { return l.issueDate }
func (l *Loan) DueDate() time.Time           { return l.dueDate }
func (l *Loan) Returned() bool               { return l.returned }
func (l *Loan) ReturnDate() *time.Time       { return l.returnDate }
func (l *Loan) ReturnRequest() ReturnRequest { return l.returnRequest }
func (l *Loan) LateFee() int64               { return l.lateFee }
func (l *Loan) Reserved() bool               { return l.reserved }
