//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/commands"
	"library-lending/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

var t0 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

type LendingTestSuite struct {
	suite.Suite
	store     *memStore
	clock     *clock.MockClock
	uc        commands.LendingCommands
	member    user.Actor
	librarian user.Actor
}

func (s *LendingTestSuite) SetupTest() {
	s.store = newMemStore()
	s.clock = clock.NewMockClock(t0)
	s.uc = commands.NewLendingUseCase(newMemUoW(s.store), s.clock, commands.LendingOptions{Policy: loan.DefaultPolicy()})
	s.member = user.NewActor(uuid.New(), user.RoleMember)
	s.librarian = user.NewActor(uuid.New(), user.RoleLibrarian)
}

func TestLendingSuite(t *testing.T) {
	suite.Run(t, new(LendingTestSuite))
}

func (s *LendingTestSuite) seedBook(copies int) *book.Book {
	b := builder.NewBookBuilder().WithCopies(copies).BuildDomain()
	s.store.seedBook(b)
	return b
}

func dbFailure() error {
	return infra.WrapRepoErr("insert failed", errors.New("connection reset by peer"))
}

// ================================================================================
// IssueBook
// ================================================================================

func (s *LendingTestSuite) TestIssueBook() {
	s.Run("success: takes a copy, sets the due date and notifies the holder", func() {
		b := s.seedBook(3)

		l, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.Require().NoError(err)
		s.Equal(2, s.store.copiesOf(b.ID()))
		s.Equal(t0, l.IssueDate())
		s.Equal(t0.Add(14*24*time.Hour), l.DueDate())
		s.False(l.Returned())
		s.Equal(loan.ReturnRequestNone, l.ReturnRequest())

		notes := s.store.notificationsFor(s.member.ID)
		s.Require().Len(notes, 1)
		s.Equal(notification.KindBookIssued, notes[0].Kind())
		s.Contains(notes[0].Message(), "Mar 17, 2025")
	})

	s.Run("error: out of stock leaves everything untouched", func() {
		b := s.seedBook(0)
		loansBefore := s.store.loanCount()

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.ErrorIs(err, errs.ErrOutOfStock)
		s.Equal(0, s.store.copiesOf(b.ID()))
		s.Equal(loansBefore, s.store.loanCount())
	})

	s.Run("error: unknown book", func() {
		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: uuid.New()})

		s.ErrorIs(err, book.ErrBookNotFound)
		s.ErrorIs(err, errs.ErrNotFound)
	})

	s.Run("error: members cannot issue to someone else", func() {
		b := s.seedBook(1)
		other := uuid.New()

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID(), UserID: &other})

		s.ErrorIs(err, errs.ErrForbidden)
		s.Equal(1, s.store.copiesOf(b.ID()))
	})

	s.Run("success: staff issue on behalf of a patron", func() {
		b := s.seedBook(1)
		patron := uuid.New()

		l, err := s.uc.IssueBook(context.Background(), s.librarian, commands.IssueBookRequest{BookID: b.ID(), UserID: &patron})

		s.Require().NoError(err)
		s.Equal(patron, l.UserID())
		s.Len(s.store.notificationsFor(patron), 1)
	})
}

func (s *LendingTestSuite) TestIssueBook_DuplicateGuard() {
	uc := commands.NewLendingUseCase(newMemUoW(s.store), s.clock, commands.LendingOptions{
		Policy:                loan.DefaultPolicy(),
		PreventDuplicateLoans: true,
	})
	b := s.seedBook(2)

	_, err := uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})
	s.Require().NoError(err)

	_, err = uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

	s.ErrorIs(err, loan.ErrDuplicateLoan)
	s.ErrorIs(err, errs.ErrDuplicate)
	s.Equal(1, s.store.copiesOf(b.ID()))
}

func (s *LendingTestSuite) TestIssueBook_DuplicateGuardRecheckedUnderLock() {
	uc := commands.NewLendingUseCase(newMemUoW(s.store), s.clock, commands.LendingOptions{
		Policy:                loan.DefaultPolicy(),
		PreventDuplicateLoans: true,
	})
	b := s.seedBook(2)
	// a concurrent issue to the same member commits after the early check
	rival := builder.NewLoanBuilder().ForBook(b.ID()).HeldBy(s.member.ID).BuildDomain()
	s.store.failOnce("books.lock", func() error {
		s.store.loans[rival.ID()] = *rival
		return nil
	})

	_, err := uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

	s.ErrorIs(err, loan.ErrDuplicateLoan)
	s.False(errs.Is(err, errs.ErrPartialFailure))
	s.Equal(2, s.store.copiesOf(b.ID()))
	s.Equal(1, s.store.loanCount())
}

func (s *LendingTestSuite) TestIssueBook_ConcurrentLastCopy() {
	b := s.seedBook(1)
	const callers = 8

	var ok, outOfStock atomic.Int32
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		actor := user.NewActor(uuid.New(), user.RoleMember)
		g.Go(func() error {
			_, err := s.uc.IssueBook(context.Background(), actor, commands.IssueBookRequest{BookID: b.ID()})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, errs.ErrOutOfStock):
				outOfStock.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), ok.Load())
	s.Equal(int32(callers-1), outOfStock.Load())
	s.Equal(0, s.store.copiesOf(b.ID()))
	s.Equal(1, s.store.loanCount())
}

func (s *LendingTestSuite) TestIssueBook_Compensation() {
	s.Run("ledger failure restores the copy and reports a partial failure", func() {
		b := s.seedBook(1)
		s.store.failOnce("loans.create", dbFailure)

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrPartialFailure))
		s.False(errs.Is(err, errs.ErrNeedsReconciliation))
		s.Equal(1, s.store.copiesOf(b.ID()))
		s.Equal(0, s.store.loanCount())
		s.Empty(s.store.notificationsFor(s.member.ID))
	})

	s.Run("notification failure rolls back the loan as well", func() {
		b := s.seedBook(2)
		s.store.failOnce("notifications.create", dbFailure)

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.True(errs.Is(err, errs.ErrPartialFailure))
		s.Equal(2, s.store.copiesOf(b.ID()))
		s.Equal(0, s.store.loanCount())
	})

	s.Run("compensation runs even when the caller has gone away", func() {
		b := s.seedBook(1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		s.store.failOnce("loans.create", func() error {
			cancel()
			return dbFailure()
		})

		_, err := s.uc.IssueBook(ctx, s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.True(errs.Is(err, errs.ErrPartialFailure))
		s.Equal(1, s.store.copiesOf(b.ID()))
	})

	s.Run("failed compensation is surfaced together with the cause", func() {
		b := s.seedBook(1)
		undoErr := infra.WrapRepoErr("update failed", errors.New("server closed the connection"))
		s.store.failOnce("loans.create", dbFailure)
		s.store.failOnce("books.increment", func() error { return undoErr })

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.True(errs.Is(err, errs.ErrPartialFailure))
		s.True(errs.Is(err, errs.ErrNeedsReconciliation))
		s.Contains(err.Error(), "copy count was not restored")
		s.Contains(err.Error(), "server closed the connection")
		s.Equal(0, s.store.copiesOf(b.ID()))
	})

	s.Run("book deleted before the loan insert reports not found", func() {
		b := s.seedBook(1)
		// runs under the store lock, right before the foreign key check
		s.store.failOnce("loans.create", func() error {
			delete(s.store.books, b.ID())
			return nil
		})

		_, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})

		s.ErrorIs(err, book.ErrBookNotFound)
		s.False(errs.Is(err, errs.ErrPartialFailure))
		s.Equal(0, s.store.loanCount())
		s.Empty(s.store.notificationsFor(s.member.ID))
	})
}

// ================================================================================
// Return flow
// ================================================================================

func (s *LendingTestSuite) issue(b *book.Book) *loan.Loan {
	l, err := s.uc.IssueBook(context.Background(), s.member, commands.IssueBookRequest{BookID: b.ID()})
	s.Require().NoError(err)
	return l
}

func (s *LendingTestSuite) TestReturnRoundTripRestoresCopies() {
	b := s.seedBook(2)
	l := s.issue(b)
	s.Equal(1, s.store.copiesOf(b.ID()))

	requested, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
	s.Require().NoError(err)
	s.Equal(loan.ReturnRequestPending, requested.ReturnRequest())
	s.Equal(1, s.store.copiesOf(b.ID()))

	s.clock.Add(24 * time.Hour)
	approved, err := s.uc.ApproveReturn(context.Background(), s.librarian, l.ID())

	s.Require().NoError(err)
	s.Equal(2, s.store.copiesOf(b.ID()))
	s.True(approved.Returned())
	s.Equal(loan.ReturnRequestApproved, approved.ReturnRequest())
	s.Require().NotNil(approved.ReturnDate())
	s.Equal(t0.Add(24*time.Hour), *approved.ReturnDate())
	s.Equal(int64(0), approved.LateFee())

	stored := s.store.loan(l.ID())
	s.True(stored.Returned())
	s.Equal(loan.StateReturned, stored.State())

	notes := s.store.notificationsFor(s.member.ID)
	s.Require().Len(notes, 2)
	s.Equal(notification.KindReturnApproved, notes[1].Kind())
}

func (s *LendingTestSuite) TestApproveReturn_LateFee() {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantFee int64
	}{
		{name: "returned before the due date", elapsed: 10 * 24 * time.Hour, wantFee: 0},
		{name: "returned exactly on the due date", elapsed: 14 * 24 * time.Hour, wantFee: 0},
		{name: "returned three days late", elapsed: 17 * 24 * time.Hour, wantFee: 15},
		{name: "a started day counts in full", elapsed: 14*24*time.Hour + time.Hour, wantFee: 5},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.clock.Set(t0)
			b := s.seedBook(1)
			l := s.issue(b)
			_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
			s.Require().NoError(err)

			s.clock.Set(t0.Add(tt.elapsed))
			approved, err := s.uc.ApproveReturn(context.Background(), s.librarian, l.ID())

			s.Require().NoError(err)
			s.Equal(tt.wantFee, approved.LateFee())
			stored := s.store.loan(l.ID())
			s.Equal(tt.wantFee, stored.LateFee())
		})
	}
}

func (s *LendingTestSuite) TestApproveReturn_Errors() {
	s.Run("error: no pending request", func() {
		l := s.issue(s.seedBook(1))

		_, err := s.uc.ApproveReturn(context.Background(), s.librarian, l.ID())

		s.ErrorIs(err, loan.ErrReturnNotPending)
		s.ErrorIs(err, errs.ErrInvalidState)
	})

	s.Run("error: members cannot approve", func() {
		l := s.issue(s.seedBook(1))
		_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
		s.Require().NoError(err)

		_, err = s.uc.ApproveReturn(context.Background(), s.member, l.ID())

		s.ErrorIs(err, errs.ErrForbidden)
	})

	s.Run("error: unknown loan", func() {
		_, err := s.uc.ApproveReturn(context.Background(), s.librarian, uuid.New())

		s.ErrorIs(err, loan.ErrLoanNotFound)
	})

	s.Run("ledger failure takes the returned copy back out", func() {
		b := s.seedBook(1)
		l := s.issue(b)
		_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
		s.Require().NoError(err)
		s.store.failOnce("loans.transition", dbFailure)

		_, err = s.uc.ApproveReturn(context.Background(), s.librarian, l.ID())

		s.True(errs.Is(err, errs.ErrPartialFailure))
		s.Equal(0, s.store.copiesOf(b.ID()))
		stored := s.store.loan(l.ID())
		s.False(stored.Returned())
	})
}

func (s *LendingTestSuite) TestApproveReturn_ConcurrentApprovalsCountOnce() {
	b := s.seedBook(1)
	l := s.issue(b)
	_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
	s.Require().NoError(err)

	const callers = 6
	var ok, lost atomic.Int32
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			_, err := s.uc.ApproveReturn(context.Background(), s.librarian, l.ID())
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, errs.ErrInvalidState):
				lost.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), ok.Load())
	s.Equal(int32(callers-1), lost.Load())
	s.Equal(1, s.store.copiesOf(b.ID()))
}

func (s *LendingTestSuite) TestRequestReturn() {
	s.Run("error: already returned loan is not found", func() {
		b := s.seedBook(1)
		returned := builder.NewLoanBuilder().ForBook(b.ID()).HeldBy(s.member.ID).AsReturned(t0, 0).BuildDomain()
		s.store.seedLoan(returned)

		_, err := s.uc.RequestReturn(context.Background(), s.member, returned.ID())

		s.ErrorIs(err, errs.ErrNotFound)
	})

	s.Run("error: someone else's loan", func() {
		l := s.issue(s.seedBook(1))
		stranger := user.NewActor(uuid.New(), user.RoleMember)

		_, err := s.uc.RequestReturn(context.Background(), stranger, l.ID())

		s.ErrorIs(err, loan.ErrNotHolder)
	})

	s.Run("error: request already pending", func() {
		l := s.issue(s.seedBook(1))
		_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
		s.Require().NoError(err)

		_, err = s.uc.RequestReturn(context.Background(), s.member, l.ID())

		s.ErrorIs(err, loan.ErrReturnAlreadyPending)
	})

	s.Run("success: staff may request on the holder's behalf", func() {
		l := s.issue(s.seedBook(1))

		got, err := s.uc.RequestReturn(context.Background(), s.librarian, l.ID())

		s.Require().NoError(err)
		s.Equal(loan.StateReturnRequested, got.State())
	})
}

func (s *LendingTestSuite) TestRejectReturn() {
	b := s.seedBook(1)
	l := s.issue(b)
	_, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())
	s.Require().NoError(err)

	rejected, err := s.uc.RejectReturn(context.Background(), s.librarian, l.ID())

	s.Require().NoError(err)
	s.Equal(loan.ReturnRequestRejected, rejected.ReturnRequest())
	s.Equal(loan.StateIssued, rejected.State())
	s.Equal(0, s.store.copiesOf(b.ID()))
	notes := s.store.notificationsFor(s.member.ID)
	s.Equal(notification.KindReturnRejected, notes[len(notes)-1].Kind())

	s.Run("a rejected request may be raised again", func() {
		again, err := s.uc.RequestReturn(context.Background(), s.member, l.ID())

		s.Require().NoError(err)
		s.Equal(loan.ReturnRequestPending, again.ReturnRequest())
	})

	s.Run("error: rejecting without a pending request", func() {
		other := s.issue(s.seedBook(1))

		_, err := s.uc.RejectReturn(context.Background(), s.librarian, other.ID())

		s.ErrorIs(err, errs.ErrInvalidState)
	})
}
