package commands

import (
	"context"
	"log/slog"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/commands/catalog.go -package=commandsmock

type AddOrRestockRequest struct {
	ISBN        string
	CopiesDelta int
	// Manual is used when the catalog has no entry for the isbn or cannot be reached,
	// and fills whatever fields the catalog entry leaves empty.
	Manual book.Details
}

type AddOrRestockResult struct {
	Book      *book.Book
	Restocked bool
}

type ManualAddRequest struct {
	ISBN    string
	Details book.Details
	// nil means book.DefaultManualCopies
	Copies *int
}

type CatalogCommands interface {
	AddOrRestockBook(ctx context.Context, actor user.Actor, req AddOrRestockRequest) (*AddOrRestockResult, error)
	ManualAddBook(ctx context.Context, actor user.Actor, req ManualAddRequest) (*book.Book, error)
	ModifyBook(ctx context.Context, actor user.Actor, id uuid.UUID, changes book.Changes) (*book.Book, error)
	DeleteBook(ctx context.Context, actor user.Actor, id uuid.UUID) error
}

type catalogUseCaseImpl struct {
	uow    shared.UnitOfWork
	lookup shared.CatalogLookup
	clock  clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, lookup shared.CatalogLookup, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, lookup: lookup, clock: clk}
}

// AddOrRestockBook restocks a known isbn without consulting the catalog. An unknown isbn
// is looked up once and inserted with copies = CopiesDelta.
func (uc *catalogUseCaseImpl) AddOrRestockBook(ctx context.Context, actor user.Actor, req AddOrRestockRequest) (*AddOrRestockResult, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	isbn := book.NormalizeISBN(req.ISBN)
	if isbn.IsZero() {
		return nil, ErrISBNRequired
	}
	if req.CopiesDelta <= 0 {
		return nil, book.ErrInvalidDelta
	}
	if req.CopiesDelta > book.MaxCopies {
		return nil, book.ErrTooManyCopies
	}

	restocked, err := uc.restock(ctx, isbn, req.CopiesDelta)
	if err != nil {
		return nil, err
	}
	if restocked != nil {
		return &AddOrRestockResult{Book: restocked, Restocked: true}, nil
	}

	details, err := uc.resolveDetails(ctx, isbn, req.Manual)
	if err != nil {
		return nil, err
	}
	b, err := book.NewBook(isbn, details, req.CopiesDelta, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Create(ctx, tx.DB(), b)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		// another librarian added the same isbn first
		restocked, err = uc.restock(ctx, isbn, req.CopiesDelta)
		if err != nil {
			return nil, err
		}
		if restocked != nil {
			return &AddOrRestockResult{Book: restocked, Restocked: true}, nil
		}
		return nil, book.ErrDuplicateISBN
	}
	if err != nil {
		return nil, infra.Translate(err, nil)
	}

	slog.Info("book added from catalog lookup", "book_id", b.ID(), "isbn", isbn.String())
	return &AddOrRestockResult{Book: b}, nil
}

// restock returns nil, nil when no book carries the isbn.
func (uc *catalogUseCaseImpl) restock(ctx context.Context, isbn book.ISBN, delta int) (*book.Book, error) {
	var restocked *book.Book
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Books().FindByISBN(ctx, tx.DB(), isbn)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		if err != nil {
			return infra.Translate(err, nil)
		}
		copies, err := tx.Books().IncrementCopies(ctx, tx.DB(), existing.ID(), delta)
		if infra.IsKind(err, infra.KindConditionFailed) {
			return book.ErrTooManyCopies
		}
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		restocked = book.ReconstructBook(existing.ID(), existing.ISBN(), existing.Details(), copies,
			existing.CreatedAt(), uc.clock.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return restocked, nil
}

func (uc *catalogUseCaseImpl) resolveDetails(ctx context.Context, isbn book.ISBN, manual book.Details) (book.Details, error) {
	entry, err := uc.lookup.LookupByISBN(ctx, isbn)
	switch {
	case err == nil:
		return entry.Details().Overlay(manual), nil
	case errs.Is(err, shared.ErrCatalogNoMatch):
		if manual.IsZero() {
			return book.Details{}, book.ErrNoManualDetails
		}
		return manual, nil
	case !manual.IsZero():
		slog.Warn("catalog lookup failed; using supplied details", "isbn", isbn.String(), "error", err.Error())
		return manual, nil
	default:
		return book.Details{}, errs.Mark(err, errs.ErrUnavailable)
	}
}

func (uc *catalogUseCaseImpl) ManualAddBook(ctx context.Context, actor user.Actor, req ManualAddRequest) (*book.Book, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}
	copies := book.DefaultManualCopies
	if req.Copies != nil {
		copies = *req.Copies
	}
	b, err := book.NewBook(book.NormalizeISBN(req.ISBN), req.Details, copies, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Books().Create(ctx, tx.DB(), b)
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, book.ErrDuplicateISBN
	}
	if err != nil {
		return nil, infra.Translate(err, nil)
	}
	return b, nil
}

func (uc *catalogUseCaseImpl) ModifyBook(ctx context.Context, actor user.Actor, id uuid.UUID, changes book.Changes) (*book.Book, error) {
	if !actor.IsStaff() {
		return nil, ErrStaffOnly
	}

	var modified *book.Book
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Books().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		changed, err := b.Modify(changes, uc.clock.Now())
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Books().Update(ctx, tx.DB(), b, changes.Copies != nil); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return book.ErrDuplicateISBN
				}
				return infra.Translate(err, book.ErrBookNotFound)
			}
		}
		modified = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modified, nil
}

// DeleteBook refuses while copies are out on loan; returned loans and reservations go
// with the book. The row lock makes a concurrent loan insert wait for the delete to
// commit (its foreign key then fails) or the count to see the new loan.
func (uc *catalogUseCaseImpl) DeleteBook(ctx context.Context, actor user.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return ErrStaffOnly
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Books().LockByID(ctx, tx.DB(), id); err != nil {
			return infra.Translate(err, book.ErrBookNotFound)
		}
		open, err := tx.Loans().CountOpenByBook(ctx, tx.DB(), id)
		if err != nil {
			return infra.Translate(err, nil)
		}
		if open > 0 {
			return book.ErrHasOpenLoans
		}
		return infra.Translate(tx.Books().Delete(ctx, tx.DB(), id), book.ErrBookNotFound)
	})
}
