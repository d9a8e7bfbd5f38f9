package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is also matches references attached with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// CombineErrors keeps err as the primary cause and attaches other as a secondary one.
func CombineErrors(err, other error) error {
	return cr.CombineErrors(err, other)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
