package shared

import (
	"context"
	"strings"

	"library-lending/internal/domain/book"
	"library-lending/internal/pkg/errs"
)

var ErrCatalogNoMatch = errs.Wrap(errs.ErrNotFound, "no catalog entry for isbn")

// CatalogLookup resolves book metadata from an external catalog. Implementations return
// ErrCatalogNoMatch when the isbn is unknown and an errs.ErrUnavailable mark on transport failure.
type CatalogLookup interface {
	LookupByISBN(ctx context.Context, isbn book.ISBN) (*CatalogEntry, error)
}

type CatalogEntry struct {
	Title      string
	Authors    []string
	Categories []string
	Publisher  string
	Year       string
	Language   string
	CoverURL   string
}

func (e CatalogEntry) Details() book.Details {
	genre := ""
	if len(e.Categories) > 0 {
		genre = e.Categories[0]
	}
	return book.Details{
		Title:    e.Title,
		Author:   strings.Join(e.Authors, ", "),
		Genre:    genre,
		Language: e.Language,
		Edition:  e.Year,
		CoverURL: e.CoverURL,
	}
}
