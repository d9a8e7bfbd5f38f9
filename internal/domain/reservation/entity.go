package reservation

import (
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound  = errs.Wrap(errs.ErrNotFound, "reservation not found")
	ErrAlreadyResolved      = errs.Wrap(errs.ErrInvalidState, "reservation already resolved")
	ErrNotOwner             = errs.Wrap(errs.ErrForbidden, "reservation belongs to another user")
	ErrDuplicateReservation = errs.Wrap(errs.ErrDuplicate, "user already has a pending reservation for this book")
	ErrInvalidStatus        = errs.Wrap(errs.ErrValidation, "invalid reservation status")
)

type Reservation struct {
	id         uuid.UUID
	bookID     uuid.UUID
	loanID     *uuid.UUID
	reservedTo uuid.UUID
	status     Status
	reservedAt time.Time
	resolvedAt *time.Time
}

// NewReservation creates a pending reservation. loanID is set when the patron reserves
// against a loan they currently hold.
func NewReservation(bookID uuid.UUID, loanID *uuid.UUID, reservedTo uuid.UUID, now time.Time) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		bookID:     bookID,
		loanID:     loanID,
		reservedTo: reservedTo,
		status:     StatusPending,
		reservedAt: now,
	}
}

func ReconstructReservation(
	id, bookID uuid.UUID,
	loanID *uuid.UUID,
	reservedTo uuid.UUID,
	status Status,
	reservedAt time.Time,
	resolvedAt *time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		bookID:     bookID,
		loanID:     loanID,
		reservedTo: reservedTo,
		status:     status,
		reservedAt: reservedAt,
		resolvedAt: resolvedAt,
	}
}

func (r *Reservation) Approve(now time.Time) error {
	return r.resolve(StatusApproved, now)
}

func (r *Reservation) Reject(now time.Time) error {
	return r.resolve(StatusRejected, now)
}

// Cancel is only open to the patron the reservation was made for.
func (r *Reservation) Cancel(actorID uuid.UUID, now time.Time) error {
	if actorID != r.reservedTo {
		return ErrNotOwner
	}
	return r.resolve(StatusCancelled, now)
}

func (r *Reservation) resolve(to Status, now time.Time) error {
	if r.status.IsTerminal() {
		return ErrAlreadyResolved
	}
	r.status = to
	r.resolvedAt = &now
	return nil
}

func (r *Reservation) IsPending() bool {
	return r.status == StatusPending
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) BookID() uuid.UUID      { return r.bookID }
func (r *Reservation) LoanID() *uuid.UUID     { return r.loanID }
func (r *Reservation) ReservedTo() uuid.UUID  { return r.reservedTo }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) ReservedAt() time.Time  { return r.reservedAt }
func (r *Reservation) ResolvedAt() *time.Time { return r.resolvedAt }
