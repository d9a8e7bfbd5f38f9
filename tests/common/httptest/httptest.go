//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// RequestOption adjusts a request before it is served.
type RequestOption func(r *http.Request)

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func WithCookies(cookies ...*http.Cookie) RequestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

// PerformRequest serves a JSON request against router. An empty authToken sends no
// Authorization header.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string, opts ...RequestOption) *httptest.ResponseRecorder {
	t.Helper()

	var payload io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func PerformRequestWithCookies(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequest(t, router, method, path, body, authToken, WithCookies(cookies...))
}
