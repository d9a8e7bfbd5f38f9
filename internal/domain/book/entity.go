package book

import (
	"strings"
	"time"

	"library-lending/internal/pkg/errs"
	"library-lending/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound    = errs.Wrap(errs.ErrNotFound, "book not found")
	ErrOutOfStock      = errs.Wrap(errs.ErrOutOfStock, "no copies available")
	ErrTitleRequired   = errs.Wrap(errs.ErrValidation, "title is required")
	ErrNegativeCopies  = errs.Wrap(errs.ErrValidation, "copies cannot be negative")
	ErrInvalidDelta    = errs.Wrap(errs.ErrValidation, "copies delta must be positive")
	ErrTooManyCopies   = errs.Wrap(errs.ErrValidation, "copies cannot exceed 10000")
	ErrHasOpenLoans    = errs.Wrap(errs.ErrInvalidState, "book has copies on loan")
	ErrDuplicateISBN   = errs.Wrap(errs.ErrDuplicate, "a book with this isbn already exists")
	ErrNoManualDetails = errs.Wrap(errs.ErrNotFound, "isbn not found in catalog and no details supplied")
)

const (
	DefaultManualCopies = 1
	// MaxCopies caps a single restock and any absolute copy count a caller sets.
	MaxCopies = 10_000
)

// Details are the descriptive fields of a book. They come either from the caller or
// from an external catalog lookup.
type Details struct {
	Title    string
	Author   string
	Genre    string
	Language string
	Edition  string
	CoverURL string
}

func (d Details) normalized() Details {
	return Details{
		Title:    strings.TrimSpace(d.Title),
		Author:   strings.TrimSpace(d.Author),
		Genre:    strings.TrimSpace(d.Genre),
		Language: strings.TrimSpace(d.Language),
		Edition:  strings.TrimSpace(d.Edition),
		CoverURL: strings.TrimSpace(d.CoverURL),
	}
}

func (d Details) IsZero() bool {
	return d.normalized() == Details{}
}

// Overlay fills the empty fields of d from fallback.
func (d Details) Overlay(fallback Details) Details {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) != "" {
			return a
		}
		return b
	}
	return Details{
		Title:    pick(d.Title, fallback.Title),
		Author:   pick(d.Author, fallback.Author),
		Genre:    pick(d.Genre, fallback.Genre),
		Language: pick(d.Language, fallback.Language),
		Edition:  pick(d.Edition, fallback.Edition),
		CoverURL: pick(d.CoverURL, fallback.CoverURL),
	}
}

type Book struct {
	id        uuid.UUID
	isbn      ISBN
	details   Details
	copies    int
	createdAt time.Time
	updatedAt time.Time
}

func NewBook(isbn ISBN, details Details, copies int, now time.Time) (*Book, error) {
	details = details.normalized()
	if details.Title == "" {
		return nil, ErrTitleRequired
	}
	if copies < 0 {
		return nil, ErrNegativeCopies
	}
	if copies > MaxCopies {
		return nil, ErrTooManyCopies
	}
	return &Book{
		id:        uuid.New(),
		isbn:      isbn,
		details:   details,
		copies:    copies,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBook(id uuid.UUID, isbn ISBN, details Details, copies int, createdAt, updatedAt time.Time) *Book {
	return &Book{
		id:        id,
		isbn:      isbn,
		details:   details,
		copies:    copies,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Changes is a partial update; nil fields are left untouched.
type Changes struct {
	ISBN     *string
	Title    *string
	Author   *string
	Genre    *string
	Language *string
	Edition  *string
	CoverURL *string
	Copies   *int
}

// Modify applies changes in place and reports whether anything changed.
func (b *Book) Modify(c Changes, now time.Time) (bool, error) {
	next := *b
	changed := false

	if c.ISBN != nil {
		isbn := NormalizeISBN(*c.ISBN)
		changed = patch.Apply(&next.isbn, &isbn) || changed
	}
	changed = patch.Apply(&next.details.Title, c.Title) || changed
	changed = patch.Apply(&next.details.Author, c.Author) || changed
	changed = patch.Apply(&next.details.Genre, c.Genre) || changed
	changed = patch.Apply(&next.details.Language, c.Language) || changed
	changed = patch.Apply(&next.details.Edition, c.Edition) || changed
	changed = patch.Apply(&next.details.CoverURL, c.CoverURL) || changed
	changed = patch.Apply(&next.copies, c.Copies) || changed

	next.details = next.details.normalized()
	if next.details.Title == "" {
		return false, ErrTitleRequired
	}
	if next.copies < 0 {
		return false, ErrNegativeCopies
	}
	if next.copies > MaxCopies {
		return false, ErrTooManyCopies
	}
	if changed {
		next.updatedAt = now
	}
	*b = next
	return changed, nil
}

func (b *Book) IsAvailable() bool {
	return b.copies > 0
}

func (b *Book) ID() uuid.UUID        { return b.id }
func (b *Book) ISBN() ISBN           { return b.isbn }
func (b *Book) Details() Details     { return b.details }
func (b *Book) Title() string        { return b.details.Title }
func (b *Book) Author() string       { return b.details.Author }
func (b *Book) Genre() string        { return b.details.Genre }
func (b *Book) Language() string     { return b.details.Language }
func (b *Book) Edition() string      { return b.details.Edition }
func (b *Book) CoverURL() string     { return b.details.CoverURL }
func (b *Book) Copies() int          { return b.copies }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }
