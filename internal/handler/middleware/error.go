package middleware

import (
	"log/slog"
	"net/http"

	"library-lending/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the response for errors handlers attached but did not render.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		// newest first: the last public error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}

		// private errors still go through the category mapping, so a wrapped
		// NotFound from a helper is not reported as a 500
		last := c.Errors.Last()
		slog.Warn("unrendered handler error",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"error", last.Error())
		httperr.AbortWithDomainError(c, last.Err)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"request_id", GetRequestID(c),
					"error", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
