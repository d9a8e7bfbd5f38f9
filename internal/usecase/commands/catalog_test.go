//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"library-lending/internal/domain/book"
	"library-lending/internal/domain/user"
	"library-lending/internal/infra"
	"library-lending/internal/pkg/clock"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/shared"
	"library-lending/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type CatalogTestSuite struct {
	suite.Suite
	store     *memStore
	lookup    *fakeCatalog
	uc        commands.CatalogCommands
	librarian user.Actor
}

func (s *CatalogTestSuite) SetupTest() {
	s.store = newMemStore()
	s.lookup = &fakeCatalog{entries: map[book.ISBN]*shared.CatalogEntry{
		"222": {
			Title:      "Designing Data-Intensive Applications",
			Authors:    []string{"Martin Kleppmann"},
			Categories: []string{"Computers", "Databases"},
			Year:       "2017",
			Language:   "en",
			CoverURL:   "https://books.example/ddia.jpg",
		},
	}}
	s.uc = commands.NewCatalogUseCase(newMemUoW(s.store), s.lookup, clock.NewMockClock(t0))
	s.librarian = user.NewActor(uuid.New(), user.RoleLibrarian)
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) add(isbn string, delta int, manual book.Details) (*commands.AddOrRestockResult, error) {
	return s.uc.AddOrRestockBook(context.Background(), s.librarian, commands.AddOrRestockRequest{
		ISBN:        isbn,
		CopiesDelta: delta,
		Manual:      manual,
	})
}

func (s *CatalogTestSuite) TestAddOrRestock_KnownISBNSkipsLookup() {
	existing := builder.NewBookBuilder().WithISBN("111").WithCopies(1).BuildDomain()
	s.store.seedBook(existing)

	res, err := s.add("111", 2, book.Details{})

	s.Require().NoError(err)
	s.True(res.Restocked)
	s.Equal(existing.ID(), res.Book.ID())
	s.Equal(3, res.Book.Copies())
	s.Equal(3, s.store.copiesOf(existing.ID()))
	s.Equal(int32(0), s.lookup.calls.Load())
	s.Equal(existing.Title(), res.Book.Title())
}

func (s *CatalogTestSuite) TestAddOrRestock_CountOverflow() {
	existing := builder.NewBookBuilder().WithISBN("112").WithCopies(1).BuildDomain()
	s.store.seedBook(existing)
	s.store.failOnce("books.increment", func() error {
		return infra.WrapRepoErr("failed to restock", &pgconn.PgError{Code: "22003", Message: "integer out of range"})
	})

	_, err := s.add("112", 5, book.Details{})

	s.ErrorIs(err, book.ErrTooManyCopies)
	s.ErrorIs(err, errs.ErrValidation)
	s.Equal(1, s.store.copiesOf(existing.ID()))
}

func (s *CatalogTestSuite) TestAddOrRestock_UnknownISBNLooksUpOnce() {
	res, err := s.add("222", 2, book.Details{})

	s.Require().NoError(err)
	s.False(res.Restocked)
	s.Equal(int32(1), s.lookup.calls.Load())
	s.Equal(2, res.Book.Copies())

	stored, ok := s.store.bookByISBN("222")
	s.Require().True(ok)
	s.Equal("Designing Data-Intensive Applications", stored.Title())
	s.Equal("Martin Kleppmann", stored.Author())
	s.Equal("Computers", stored.Genre())
	s.Equal("2017", stored.Edition())
	s.Equal("https://books.example/ddia.jpg", stored.CoverURL())

	s.Run("the second add is a restock", func() {
		res, err := s.add("222", 1, book.Details{})

		s.Require().NoError(err)
		s.True(res.Restocked)
		s.Equal(3, res.Book.Copies())
		s.Equal(int32(1), s.lookup.calls.Load())
		s.Equal(1, s.store.bookCount())
	})
}

func (s *CatalogTestSuite) TestAddOrRestock_ManualDetails() {
	manual := book.Details{Title: "Local Zine", Author: "Staff", Genre: "Local"}

	s.Run("error: no match and nothing supplied", func() {
		_, err := s.add("333", 1, book.Details{})

		s.ErrorIs(err, book.ErrNoManualDetails)
		s.ErrorIs(err, errs.ErrNotFound)
		s.Zero(s.store.bookCount())
	})

	s.Run("success: no match falls back to the supplied details", func() {
		res, err := s.add("333", 1, manual)

		s.Require().NoError(err)
		s.Equal("Local Zine", res.Book.Title())
	})

	s.Run("success: supplied details fill gaps in the catalog entry", func() {
		res, err := s.add("222", 1, book.Details{Title: "ignored", Edition: "2nd", Genre: "Systems"})

		s.Require().NoError(err)
		s.Equal("Designing Data-Intensive Applications", res.Book.Title())
		s.Equal("Computers", res.Book.Genre())
		s.Equal("2017", res.Book.Edition())
	})
}

func (s *CatalogTestSuite) TestAddOrRestock_CatalogOutage() {
	s.lookup.err = errs.Mark(errors.New("503 from upstream"), errs.ErrUnavailable)

	s.Run("error: unavailable without manual details", func() {
		_, err := s.add("444", 1, book.Details{})

		s.True(errs.Is(err, errs.ErrUnavailable))
		s.Zero(s.store.bookCount())
	})

	s.Run("success: manual details are used while the catalog is down", func() {
		res, err := s.add("444", 1, book.Details{Title: "Offline Entry"})

		s.Require().NoError(err)
		s.Equal("Offline Entry", res.Book.Title())
	})
}

func (s *CatalogTestSuite) TestAddOrRestock_ConcurrentFirstAdd() {
	racer := builder.NewBookBuilder().WithISBN("222").WithCopies(4).BuildDomain()
	s.store.failOnce("books.create", func() error {
		// the other request's insert lands first
		s.store.books[racer.ID()] = *racer
		return infra.WrapRepoErr("duplicate isbn", nil, infra.KindDuplicateKey)
	})

	res, err := s.add("222", 2, book.Details{})

	s.Require().NoError(err)
	s.True(res.Restocked)
	s.Equal(racer.ID(), res.Book.ID())
	s.Equal(6, s.store.copiesOf(racer.ID()))
	s.Equal(1, s.store.bookCount())
}

func (s *CatalogTestSuite) TestAddOrRestock_Validation() {
	tests := []struct {
		name    string
		actor   user.Actor
		isbn    string
		delta   int
		wantErr error
	}{
		{name: "member", actor: user.NewActor(uuid.New(), user.RoleMember), isbn: "222", delta: 1, wantErr: errs.ErrForbidden},
		{name: "blank isbn", actor: s.librarian, isbn: "  ", delta: 1, wantErr: commands.ErrISBNRequired},
		{name: "zero delta", actor: s.librarian, isbn: "222", delta: 0, wantErr: book.ErrInvalidDelta},
		{name: "negative delta", actor: s.librarian, isbn: "222", delta: -2, wantErr: errs.ErrValidation},
		{name: "delta above the cap", actor: s.librarian, isbn: "222", delta: book.MaxCopies + 1, wantErr: book.ErrTooManyCopies},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.uc.AddOrRestockBook(context.Background(), tt.actor, commands.AddOrRestockRequest{ISBN: tt.isbn, CopiesDelta: tt.delta})

			s.ErrorIs(err, tt.wantErr)
			s.Equal(int32(0), s.lookup.calls.Load())
		})
	}
}

func (s *CatalogTestSuite) TestManualAddBook() {
	s.Run("success: defaults to one copy", func() {
		b, err := s.uc.ManualAddBook(context.Background(), s.librarian, commands.ManualAddRequest{
			Details: book.Details{Title: "No ISBN Pamphlet"},
		})

		s.Require().NoError(err)
		s.Equal(book.DefaultManualCopies, b.Copies())
		s.True(b.ISBN().IsZero())
	})

	s.Run("success: books without isbn do not collide", func() {
		zero := 0
		_, err := s.uc.ManualAddBook(context.Background(), s.librarian, commands.ManualAddRequest{
			Details: book.Details{Title: "Another Pamphlet"},
			Copies:  &zero,
		})

		s.Require().NoError(err)
	})

	s.Run("error: duplicate isbn", func() {
		s.store.seedBook(builder.NewBookBuilder().WithISBN("555").BuildDomain())

		_, err := s.uc.ManualAddBook(context.Background(), s.librarian, commands.ManualAddRequest{
			ISBN:    "555",
			Details: book.Details{Title: "Clash"},
		})

		s.ErrorIs(err, book.ErrDuplicateISBN)
	})

	s.Run("error: title is required", func() {
		_, err := s.uc.ManualAddBook(context.Background(), s.librarian, commands.ManualAddRequest{ISBN: "556"})

		s.ErrorIs(err, book.ErrTitleRequired)
	})
}

func (s *CatalogTestSuite) TestModifyBook() {
	b := builder.NewBookBuilder().BuildDomain()
	s.store.seedBook(b)

	s.Run("success: partial update", func() {
		title := "The Go Programming Language (2nd)"
		copies := 7

		got, err := s.uc.ModifyBook(context.Background(), s.librarian, b.ID(), book.Changes{Title: &title, Copies: &copies})

		s.Require().NoError(err)
		s.Equal(title, got.Title())
		s.Equal(7, s.store.copiesOf(b.ID()))
		s.Equal(b.Author(), got.Author())
	})

	s.Run("error: negative copies", func() {
		copies := -1

		_, err := s.uc.ModifyBook(context.Background(), s.librarian, b.ID(), book.Changes{Copies: &copies})

		s.ErrorIs(err, book.ErrNegativeCopies)
		s.Equal(7, s.store.copiesOf(b.ID()))
	})

	s.Run("error: unknown book", func() {
		title := "x"

		_, err := s.uc.ModifyBook(context.Background(), s.librarian, uuid.New(), book.Changes{Title: &title})

		s.ErrorIs(err, book.ErrBookNotFound)
	})
}

func (s *CatalogTestSuite) TestDeleteBook() {
	s.Run("error: open loans block deletion", func() {
		b := builder.NewBookBuilder().WithISBN("601").BuildDomain()
		s.store.seedBook(b)
		s.store.seedLoan(builder.NewLoanBuilder().ForBook(b.ID()).BuildDomain())

		err := s.uc.DeleteBook(context.Background(), s.librarian, b.ID())

		s.ErrorIs(err, book.ErrHasOpenLoans)
		s.ErrorIs(err, errs.ErrInvalidState)
		_, ok := s.store.bookByISBN("601")
		s.True(ok)
	})

	s.Run("success: history goes with the book", func() {
		b := builder.NewBookBuilder().WithISBN("602").BuildDomain()
		s.store.seedBook(b)
		returned := builder.NewLoanBuilder().ForBook(b.ID()).AsReturned(t0, 0).BuildDomain()
		s.store.seedLoan(returned)

		err := s.uc.DeleteBook(context.Background(), s.librarian, b.ID())

		s.Require().NoError(err)
		_, ok := s.store.bookByISBN("602")
		s.False(ok)
		gone := s.store.loan(returned.ID())
		s.Equal(uuid.Nil, gone.ID())
	})

	s.Run("error: unknown book", func() {
		err := s.uc.DeleteBook(context.Background(), s.librarian, uuid.New())

		s.ErrorIs(err, book.ErrBookNotFound)
	})

	s.Run("error: lock failure leaves the book in place", func() {
		b := builder.NewBookBuilder().WithISBN("603").BuildDomain()
		s.store.seedBook(b)
		s.store.failOnce("books.lock", func() error {
			return infra.WrapRepoErr("lock failed", errors.New("canceling statement due to lock timeout"))
		})

		err := s.uc.DeleteBook(context.Background(), s.librarian, b.ID())

		s.ErrorIs(err, errs.ErrUnavailable)
		_, ok := s.store.bookByISBN("603")
		s.True(ok)
	})
}
