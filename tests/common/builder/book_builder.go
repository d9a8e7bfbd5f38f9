//go:build unit || e2e

package builder

import (
	"time"

	"library-lending/internal/domain/book"
	"library-lending/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID        uuid.UUID
	ISBN      string
	Details   book.Details
	Copies    int
	CreatedAt time.Time
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		ID:   uuid.New(),
		ISBN: "9780134190440",
		Details: book.Details{
			Title:    "The Go Programming Language",
			Author:   "Alan A. A. Donovan, Brian W. Kernighan",
			Genre:    "Computers",
			Language: "en",
			Edition:  "1st",
		},
		Copies:    3,
		CreatedAt: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.ISBN = isbn
	return b
}

func (b *BookBuilder) WithCopies(n int) *BookBuilder {
	b.Copies = n
	return b
}

func (b *BookBuilder) BuildDomain() *book.Book {
	return book.ReconstructBook(b.ID, book.NormalizeISBN(b.ISBN), b.Details, b.Copies, b.CreatedAt, b.CreatedAt)
}

func (b *BookBuilder) BuildView() *queries.BookView {
	v := &queries.BookView{
		ID:        b.ID,
		Title:     b.Details.Title,
		Author:    b.Details.Author,
		Genre:     b.Details.Genre,
		Language:  b.Details.Language,
		Edition:   b.Details.Edition,
		CoverURL:  b.Details.CoverURL,
		Copies:    b.Copies,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
	if b.ISBN != "" {
		isbn := b.ISBN
		v.ISBN = &isbn
	}
	return v
}
