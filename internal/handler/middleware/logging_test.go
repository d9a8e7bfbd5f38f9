//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"library-lending/internal/handler/middleware"
	"library-lending/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := middleware.NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "2006-01-02"})

	r := gin.New()
	r.Use(logger.LoggingMiddleware())
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	tests := []struct {
		name     string
		inbound  string
		wantEcho bool
	}{
		{name: "generated when absent", inbound: ""},
		{name: "caller id reused", inbound: "desk-42_a.b", wantEcho: true},
		{name: "unsafe caller id replaced", inbound: "bad id\r\n"},
		{name: "oversized caller id replaced", inbound: strings.Repeat("a", 65)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := nethttptest.NewRequest(http.MethodGet, "/echo", nil)
			if tt.inbound != "" {
				req.Header.Set("X-Request-ID", tt.inbound)
			}
			rec := nethttptest.NewRecorder()
			r.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-ID")
			assert.NotEmpty(t, got)
			assert.Equal(t, got, rec.Body.String())
			if tt.wantEcho {
				assert.Equal(t, tt.inbound, got)
			} else {
				assert.NotEqual(t, tt.inbound, got)
			}
		})
	}
}
