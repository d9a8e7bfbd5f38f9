//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody is the envelope every failed request is rendered with.
type ErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail map[string]any `json:"detail,omitempty"`
}

// AssertSuccessResponse checks the status and, for 2xx with a non-nil target, decodes the body.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target != nil && expectedStatus >= 200 && expectedStatus < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "failed to decode response: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the message contains expectedMsg
// (skipped when empty). The decoded envelope is returned for detail checks.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body ErrorBody
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "failed to decode error response: %s", w.Body.String())
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg, "error message mismatch")
	}
	return body
}
