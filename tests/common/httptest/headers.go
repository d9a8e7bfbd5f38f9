//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders checks exact values; an empty expected value only asserts presence.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		if v == "" {
			assert.NotEmpty(t, w.Header().Get(k), "header %s missing", k)
			continue
		}
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}
