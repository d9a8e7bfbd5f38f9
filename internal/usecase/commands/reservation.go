package commands

import (
	"context"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/reservation"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation.go -package=commandsmock

// CreateReservationRequest targets either a book or a loan the actor holds.
type CreateReservationRequest struct {
	BookID *uuid.UUID
	LoanID *uuid.UUID
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor user.Actor, req CreateReservationRequest) (*reservation.Reservation, error)
	ApproveReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error)
	RejectReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error)
}

type reservationUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	opts  LendingOptions
}

func NewReservationUseCase(uow shared.UnitOfWork, clk clock.Clock, opts LendingOptions) ReservationCommands {
	return &reservationUseCaseImpl{uow: uow, clock: clk, opts: opts}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, actor user.Actor, req CreateReservationRequest) (*reservation.Reservation, error) {
	if (req.BookID == nil) == (req.LoanID == nil) {
		return nil, ErrReservationTarget
	}
	now := uc.clock.Now()

	var created *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var bookID uuid.UUID
		if req.LoanID != nil {
			l, err := tx.Loans().FindByID(ctx, tx.DB(), *req.LoanID)
			if err != nil {
				return infra.Translate(err, loan.ErrLoanNotFound)
			}
			if l.UserID() != actor.ID {
				return loan.ErrNotHolder
			}
			if err := l.MarkReserved(); err != nil {
				return err
			}
			bookID = l.BookID()
		} else {
			b, err := tx.Books().FindByID(ctx, tx.DB(), *req.BookID)
			if err != nil {
				return infra.Translate(err, book.ErrBookNotFound)
			}
			bookID = b.ID()
		}

		if uc.opts.PreventDuplicateReservations {
			// serializes reservations on the same book until commit
			if _, err := tx.Books().LockByID(ctx, tx.DB(), bookID); err != nil {
				return infra.Translate(err, book.ErrBookNotFound)
			}
			pending, err := tx.Reservations().HasPending(ctx, tx.DB(), bookID, actor.ID)
			if err != nil {
				return infra.Translate(err, nil)
			}
			if pending {
				return reservation.ErrDuplicateReservation
			}
		}

		r := reservation.NewReservation(bookID, req.LoanID, actor.ID, now)
		if err := tx.Reservations().Create(ctx, tx.DB(), r); err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		if req.LoanID != nil {
			if err := tx.Loans().MarkReserved(ctx, tx.DB(), *req.LoanID); err != nil {
				if infra.IsKind(err, infra.KindConditionFailed) {
					return loan.ErrLoanClosed
				}
				return infra.Translate(err, loan.ErrLoanNotFound)
			}
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *reservationUseCaseImpl) ApproveReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	return uc.resolve(ctx, actor, id, true)
}

func (uc *reservationUseCaseImpl) RejectReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	return uc.resolve(ctx, actor, id, false)
}

// resolve notifies the patron only when this call performed the transition.
func (uc *reservationUseCaseImpl) resolve(ctx context.Context, actor user.Actor, id uuid.UUID, approve bool) (*reservation.Reservation, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	now := uc.clock.Now()

	var resolved *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return infra.Translate(err, reservation.ErrReservationNotFound)
		}
		if approve {
			err = r.Approve(now)
		} else {
			err = r.Reject(now)
		}
		if err != nil {
			return err
		}
		if err := tx.Reservations().SaveResolution(ctx, tx.DB(), r); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return reservation.ErrAlreadyResolved
			}
			return infra.Translate(err, reservation.ErrReservationNotFound)
		}

		b, err := tx.Books().FindByID(ctx, tx.DB(), r.BookID())
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		n := notification.ReservationResolved(r.ReservedTo(), b.Title(), approve, now)
		if err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
			return infra.Translate(err, nil)
		}
		resolved = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, actor user.Actor, id uuid.UUID) (*reservation.Reservation, error) {
	now := uc.clock.Now()

	var cancelled *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reservations().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return infra.Translate(err, reservation.ErrReservationNotFound)
		}
		if err := r.Cancel(actor.ID, now); err != nil {
			return err
		}
		if err := tx.Reservations().SaveResolution(ctx, tx.DB(), r); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return reservation.ErrAlreadyResolved
			}
			return infra.Translate(err, reservation.ErrReservationNotFound)
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}
