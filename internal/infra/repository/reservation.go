package repository

import (
	"context"
	"time"

	"library-lending/internal/domain/reservation"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/pgconv"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, db shared.DBTX, res *reservation.Reservation) error {
	_, err := execStmt(ctx, db, pg.Insert(tableReservations).Prepared(true).Rows(goqu.Record{
		"id":          res.ID(),
		"book_id":     res.BookID(),
		"loan_id":     pgconv.UUIDPtrToPgtype(res.LoanID()),
		"reserved_to": res.ReservedTo(),
		"status":      res.Status().String(),
		"reserved_at": res.ReservedAt(),
		"resolved_at": pgconv.TimePtrToPgtype(res.ResolvedAt()),
	}))
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, db shared.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := queryRow(ctx, db, pg.From(tableReservations).Prepared(true).
		Select("id", "book_id", "loan_id", "reserved_to", "status", "reserved_at", "resolved_at").
		Where(goqu.C("id").Eq(id)))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build reservation query", err, infra.KindDBFailure)
	}

	var (
		resID, bookID, reservedTo uuid.UUID
		loanID                    pgtype.UUID
		status                    string
		reservedAt                time.Time
		resolvedAt                pgtype.Timestamptz
	)
	if err := row.Scan(&resID, &bookID, &loanID, &reservedTo, &status, &reservedAt, &resolvedAt); err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return reservation.ReconstructReservation(resID, bookID, pgconv.UUIDPtrFromPgtype(loanID), reservedTo,
		reservation.Status(status), reservedAt, pgconv.TimePtrFromPgtype(resolvedAt)), nil
}

func (r *ReservationRepository) HasPending(ctx context.Context, db shared.DBTX, bookID, userID uuid.UUID) (bool, error) {
	row, err := queryRow(ctx, db, pg.From(tableReservations).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("reserved_to").Eq(userID),
			goqu.C("status").Eq(reservation.StatusPending.String()),
		))
	if err != nil {
		return false, infra.WrapRepoErr("failed to build reservation count", err, infra.KindDBFailure)
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return false, infra.WrapRepoErr("failed to count pending reservations", err)
	}
	return n > 0, nil
}

func (r *ReservationRepository) SaveResolution(ctx context.Context, db shared.DBTX, res *reservation.Reservation) error {
	tag, err := execStmt(ctx, db, pg.Update(tableReservations).Prepared(true).
		Set(goqu.Record{
			"status":      res.Status().String(),
			"resolved_at": pgconv.TimePtrToPgtype(res.ResolvedAt()),
		}).
		Where(
			goqu.C("id").Eq(res.ID()),
			goqu.C("status").Eq(reservation.StatusPending.String()),
		))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation resolved concurrently", nil, infra.KindConditionFailed)
	}
	return nil
}
