package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"library-lending/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Wrap(errs.ErrValidation, "invalid cursor")

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Keyset is the (sort timestamp, id) pair of the last row of a page.
type Keyset struct {
	At time.Time
	ID uuid.UUID
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	payload := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	if cursor == "" {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "cursor cannot be empty")
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "cursor is not base64url")
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "unknown cursor version")
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "expected '<micros>-<uuid>'")
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "invalid timestamp")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "invalid uuid")
	}

	return time.UnixMicro(ts), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func keysetFrom(cursor *Cursor) (*Keyset, error) {
	if cursor == nil || cursor.After == "" {
		return nil, nil
	}
	at, id, err := DecodeAfterCursor(cursor.After)
	if err != nil {
		return nil, err
	}
	return &Keyset{At: at, ID: id}, nil
}

// page trims the limit+1 lookahead row and builds the cursor for the next page.
func page[T any](rows []T, limit int, key func(T) (time.Time, uuid.UUID)) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	at, id := key(rows[limit-1])
	return rows[:limit], &Cursor{After: EncodeAfterCursor(at, id)}
}
