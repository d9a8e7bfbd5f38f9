package book

import "strings"

// ISBN is kept as an opaque catalog key: separators are stripped, but neither the length
// nor the check digit is enforced, since the catalog also holds local accession codes.
type ISBN string

func NormalizeISBN(raw string) ISBN {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch r {
		case '-', ' ', '\t':
			continue
		case 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(r)
		}
	}
	return ISBN(b.String())
}

func (i ISBN) String() string { return string(i) }

func (i ISBN) IsZero() bool { return i == "" }
