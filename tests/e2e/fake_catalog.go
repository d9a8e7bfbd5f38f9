//go:build e2e

package e2e

import (
	"context"
	"sync"

	"library-lending/internal/domain/book"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/shared"
)

// FakeCatalog stands in for the external catalog and counts lookups per isbn.
type FakeCatalog struct {
	mu      sync.Mutex
	entries map[string]shared.CatalogEntry
	calls   map[string]int
	down    bool
}

func NewFakeCatalog() *FakeCatalog {
	c := &FakeCatalog{}
	c.Reset()
	return c
}

func (c *FakeCatalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]shared.CatalogEntry{}
	c.calls = map[string]int{}
	c.down = false
}

func (c *FakeCatalog) Put(isbn string, e shared.CatalogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[isbn] = e
}

func (c *FakeCatalog) SetDown(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.down = down
}

func (c *FakeCatalog) Calls(isbn string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[isbn]
}

func (c *FakeCatalog) LookupByISBN(_ context.Context, isbn book.ISBN) (*shared.CatalogEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[isbn.String()]++
	if c.down {
		return nil, errs.Mark(errs.New("catalog unreachable"), errs.ErrUnavailable)
	}
	e, ok := c.entries[isbn.String()]
	if !ok {
		return nil, shared.ErrCatalogNoMatch
	}
	return &e, nil
}
