package httperr

import (
	"log/slog"
	"net/http"

	"library-lending/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps an error category to its HTTP status. PartialFailure is checked first
// because it is attached as a mark on top of the underlying cause.
func StatusOf(err error) int {
	switch {
	case errs.Is(err, errs.ErrPartialFailure), errs.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errs.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrOutOfStock), errs.Is(err, errs.ErrInvalidState), errs.Is(err, errs.ErrDuplicate):
		return http.StatusConflict
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type partialDetail struct {
	Retryable bool   `json:"retryable"`
	Reason    string `json:"reason"`
}

// AbortWithDomainError renders err with the status of its category. Client errors carry
// the error text; server-side failures only a generic message.
func AbortWithDomainError(c *gin.Context, err error) {
	status := StatusOf(err)
	switch {
	case errs.Is(err, errs.ErrPartialFailure):
		// not retryable; the reason tells an operator whether state needs repair
		reason := "compensated"
		if errs.Is(err, errs.ErrNeedsReconciliation) {
			reason = "needs_reconciliation"
		}
		slog.Error("partial failure", "path", c.Request.URL.Path, "reason", reason, "error", err.Error())
		AbortWithError(c, status, err, "The operation could not be completed",
			partialDetail{Retryable: false, Reason: reason})
	case status == http.StatusServiceUnavailable:
		AbortWithError(c, status, err, "Service temporarily unavailable", partialDetail{Retryable: true, Reason: "unavailable"})
	case status >= http.StatusInternalServerError:
		slog.Error("unhandled error", "path", c.Request.URL.Path, "error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12))
		AbortWithError(c, status, err, "Internal server error", nil)
	default:
		AbortWithError(c, status, err, err.Error(), nil)
	}
}
