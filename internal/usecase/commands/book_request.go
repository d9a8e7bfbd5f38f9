package commands

import (
	"context"

	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/notification"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=book_request.go -destination=../../../tests/mock/commands/book_request.go -package=commandsmock

type BookRequestCommands interface {
	SubmitBookRequest(ctx context.Context, actor user.Actor, s bookrequest.Submission) (*bookrequest.BookRequest, error)
	ApproveBookRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*bookrequest.BookRequest, error)
	RejectBookRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*bookrequest.BookRequest, error)
}

type bookRequestUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookRequestUseCase(uow shared.UnitOfWork, clk clock.Clock) BookRequestCommands {
	return &bookRequestUseCaseImpl{uow: uow, clock: clk}
}

func (uc *bookRequestUseCaseImpl) SubmitBookRequest(ctx context.Context, actor user.Actor, s bookrequest.Submission) (*bookrequest.BookRequest, error) {
	req, err := bookrequest.NewBookRequest(actor.ID, s, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return infra.Translate(tx.BookRequests().Create(ctx, tx.DB(), req), nil)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (uc *bookRequestUseCaseImpl) ApproveBookRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*bookrequest.BookRequest, error) {
	return uc.resolve(ctx, actor, id, true)
}

func (uc *bookRequestUseCaseImpl) RejectBookRequest(ctx context.Context, actor user.Actor, id uuid.UUID) (*bookrequest.BookRequest, error) {
	return uc.resolve(ctx, actor, id, false)
}

func (uc *bookRequestUseCaseImpl) resolve(ctx context.Context, actor user.Actor, id uuid.UUID, approve bool) (*bookrequest.BookRequest, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	now := uc.clock.Now()

	var resolved *bookrequest.BookRequest
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		req, err := tx.BookRequests().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return infra.Translate(err, bookrequest.ErrBookRequestNotFound)
		}
		if approve {
			err = req.Approve()
		} else {
			err = req.Reject()
		}
		if err != nil {
			return err
		}
		if err := tx.BookRequests().SaveResolution(ctx, tx.DB(), req); err != nil {
			if infra.IsKind(err, infra.KindConditionFailed) {
				return bookrequest.ErrAlreadyResolved
			}
			return infra.Translate(err, bookrequest.ErrBookRequestNotFound)
		}
		n := notification.BookRequestResolved(req.UserID(), req.Title(), approve, now)
		if err := tx.Notifications().Create(ctx, tx.DB(), n); err != nil {
			return infra.Translate(err, nil)
		}
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
