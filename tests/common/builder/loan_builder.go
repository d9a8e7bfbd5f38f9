//go:build unit || e2e

package builder

import (
	"time"

	"library-lending/internal/domain/loan"
	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoanBuilder struct {
	ID            uuid.UUID
	BookID        uuid.UUID
	BookTitle     string
	UserID        uuid.UUID
	IssueDate     time.Time
	DueDate       time.Time
	Returned      bool
	ReturnDate    *time.Time
	ReturnRequest loan.ReturnRequest
	LateFee       int64
	Reserved      bool
}

func NewLoanBuilder() *LoanBuilder {
	issued := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	return &LoanBuilder{
		ID:            uuid.New(),
		BookID:        uuid.New(),
		BookTitle:     "The Go Programming Language",
		UserID:        uuid.New(),
		IssueDate:     issued,
		DueDate:       loan.DefaultPolicy().DueDate(issued),
		ReturnRequest: loan.ReturnRequestNone,
	}
}

func (b *LoanBuilder) With(mutate func(*LoanBuilder)) *LoanBuilder {
	mutate(b)
	return b
}

func (b *LoanBuilder) ForBook(bookID uuid.UUID) *LoanBuilder {
	b.BookID = bookID
	return b
}

func (b *LoanBuilder) HeldBy(userID uuid.UUID) *LoanBuilder {
	b.UserID = userID
	return b
}

func (b *LoanBuilder) AsReturnRequested() *LoanBuilder {
	b.ReturnRequest = loan.ReturnRequestPending
	return b
}

func (b *LoanBuilder) AsReturned(at time.Time, fee int64) *LoanBuilder {
	b.Returned = true
	b.ReturnDate = &at
	b.ReturnRequest = loan.ReturnRequestApproved
	b.LateFee = fee
	return b
}

func (b *LoanBuilder) BuildDomain() *loan.Loan {
	return loan.ReconstructLoan(b.ID, b.BookID, b.UserID, b.IssueDate, b.DueDate, b.Returned, b.ReturnDate,
		b.ReturnRequest, b.LateFee, b.Reserved)
}

func (b *LoanBuilder) BuildView() *queries.LoanView {
	l := b.BuildDomain()
	return &queries.LoanView{
		ID:            b.ID,
		BookID:        b.BookID,
		BookTitle:     b.BookTitle,
		UserID:        b.UserID,
		IssueDate:     b.IssueDate,
		DueDate:       b.DueDate,
		Returned:      b.Returned,
		ReturnDate:    b.ReturnDate,
		ReturnRequest: b.ReturnRequest.String(),
		LateFee:       b.LateFee,
		Reserved:      b.Reserved,
		State:         string(l.State()),
	}
}
