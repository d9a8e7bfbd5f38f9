package commands

import (
	"context"
	"log/slog"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=lending.go -destination=../../../tests/mock/commands/lending.go -package=commandsmock

type IssueBookRequest struct {
	BookID uuid.UUID
	// UserID lets staff issue on behalf of a patron; nil means the actor.
	UserID *uuid.UUID
}

type LendingCommands interface {
	IssueBook(ctx context.Context, actor user.Actor, req IssueBookRequest) (*loan.Loan, error)
	RequestReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error)
	ApproveReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error)
	RejectReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error)
}

type lendingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	opts  LendingOptions
}

func NewLendingUseCase(uow shared.UnitOfWork, clk clock.Clock, opts LendingOptions) LendingCommands {
	return &lendingUseCaseImpl{uow: uow, clock: clk, opts: opts}
}

// IssueBook takes one copy with a guarded decrement, then records the loan and the
// notification in one transaction. If that transaction fails the copy is put back.
func (uc *lendingUseCaseImpl) IssueBook(ctx context.Context, actor user.Actor, req IssueBookRequest) (*loan.Loan, error) {
	holderID := actor.ID
	if req.UserID != nil && *req.UserID != actor.ID {
		if !actor.IsStaff() {
			return nil, ErrStaffOnly
		}
		holderID = *req.UserID
	}
	now := uc.clock.Now()

	var b *book.Book
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Books().FindByID(ctx, tx.DB(), req.BookID)
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		if !found.IsAvailable() {
			return book.ErrOutOfStock
		}
		if uc.opts.PreventDuplicateLoans {
			open, err := tx.Loans().HasOpenLoan(ctx, tx.DB(), found.ID(), holderID)
			if err != nil {
				return infra.Translate(err, nil)
			}
			if open {
				return loan.ErrDuplicateLoan
			}
		}

		if _, err := tx.Books().DecrementCopies(ctx, tx.DB(), found.ID()); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return book.ErrOutOfStock
			}
			return infra.Translate(err, book.ErrBookNotFound)
		}
		b = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	l := loan.NewLoan(uc.opts.Policy, b.ID(), holderID, now)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if uc.opts.PreventDuplicateLoans {
			// the early check ran outside any lock; repeat it holding the book row
			if _, err := tx.Books().LockByID(ctx, tx.DB(), b.ID()); err != nil {
				return infra.Translate(err, book.ErrBookNotFound)
			}
			open, err := tx.Loans().HasOpenLoan(ctx, tx.DB(), b.ID(), holderID)
			if err != nil {
				return infra.Translate(err, nil)
			}
			if open {
				return loan.ErrDuplicateLoan
			}
		}
		if err := tx.Loans().Create(ctx, tx.DB(), l); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				// deleted between the decrement and the insert
				return book.ErrBookNotFound
			}
			return infra.Translate(err, book.ErrBookNotFound)
		}
		n := notification.BookIssued(holderID, b.Title(), l.DueDate(), now)
		return infra.Translate(tx.Notifications().Create(ctx, tx.DB(), n), nil)
	})
	if err != nil {
		return nil, uc.compensate(ctx, "issue book", err, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Books().IncrementCopies(ctx, tx.DB(), b.ID(), 1)
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		})
	}

	slog.Info("book issued", "loan_id", l.ID(), "book_id", b.ID(), "user_id", holderID)
	return l, nil
}

func (uc *lendingUseCaseImpl) RequestReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error) {
	var l *loan.Loan
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Loans().FindByID(ctx, tx.DB(), loanID)
		if err != nil {
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		if !actor.CanActFor(found.UserID()) {
			return loan.ErrNotHolder
		}

		from := found.ReturnRequest()
		if err := found.RequestReturn(); err != nil {
			return err
		}
		if err := tx.Loans().SaveTransition(ctx, tx.DB(), found, from); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return loan.ErrReturnAlreadyPending
			}
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		l = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ApproveReturn puts the copy back first and then closes the loan. A concurrent
// approval or rejection that wins the loan update makes this call undo its increment.
func (uc *lendingUseCaseImpl) ApproveReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	now := uc.clock.Now()

	var (
		l     *loan.Loan
		title string
	)
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Loans().FindByID(ctx, tx.DB(), loanID)
		if err != nil {
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		if _, err := found.ApproveReturn(uc.opts.Policy, now); err != nil {
			return err
		}
		b, err := tx.Books().FindByID(ctx, tx.DB(), found.BookID())
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}

		if _, err := tx.Books().IncrementCopies(ctx, tx.DB(), b.ID(), 1); err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		l, title = found, b.Title()
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Loans().SaveTransition(ctx, tx.DB(), l, loan.ReturnRequestPending); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return loan.ErrReturnNotPending
			}
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		n := notification.ReturnApproved(l.UserID(), title, l.LateFee(), now)
		return infra.Translate(tx.Notifications().Create(ctx, tx.DB(), n), nil)
	})
	if err != nil {
		return nil, uc.compensate(ctx, "approve return", err, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Books().DecrementCopies(ctx, tx.DB(), l.BookID())
			return err
		})
	}

	slog.Info("return approved", "loan_id", l.ID(), "late_fee", l.LateFee())
	return l, nil
}

func (uc *lendingUseCaseImpl) RejectReturn(ctx context.Context, actor user.Actor, loanID uuid.UUID) (*loan.Loan, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	now := uc.clock.Now()

	var l *loan.Loan
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Loans().FindByID(ctx, tx.DB(), loanID)
		if err != nil {
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		if err := found.RejectReturn(); err != nil {
			return err
		}
		b, err := tx.Books().FindByID(ctx, tx.DB(), found.BookID())
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		if err := tx.Loans().SaveTransition(ctx, tx.DB(), found, loan.ReturnRequestPending); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return loan.ErrReturnNotPending
			}
			return infra.Translate(err, loan.ErrLoanNotFound)
		}
		n := notification.ReturnRejected(found.UserID(), b.Title(), now)
		if err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
			return infra.Translate(err, nil)
		}
		l = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// compensate reverts the copy-count step after the ledger step failed with cause.
// It runs detached from the request context so a cancelled caller cannot skip it.
// A lost race (InvalidState) that was undone cleanly is reported as such; anything
// else is a PartialFailure.
func (uc *lendingUseCaseImpl) compensate(ctx context.Context, op string, cause error, undo func(ctx context.Context, tx shared.Tx) error) error {
	ctx = context.WithoutCancel(ctx)
	if err := uc.uow.WithDB(ctx, undo); err != nil {
		slog.Error("compensation failed; copy count needs manual repair",
			"operation", op,
			"cause", cause.Error(),
			"error", err.Error())
		partial := errs.Wrapf(cause, "%s: ledger update failed and copy count was not restored (undo: %v)", op, err)
		partial = errs.Mark(errs.Mark(partial, errs.ErrPartialFailure), errs.ErrNeedsReconciliation)
		return errs.CombineErrors(partial, err)
	}

	if errs.Is(cause, errs.ErrInvalidState) || errs.Is(cause, errs.ErrNotFound) || errs.Is(cause, errs.ErrDuplicate) {
		return cause
	}
	slog.Warn("copy count restored after ledger failure", "operation", op, "error", cause.Error())
	return errs.Mark(errs.Wrapf(cause, "%s: ledger update failed", op), errs.ErrPartialFailure)
}
