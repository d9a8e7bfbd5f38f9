package api

import (
	"context"
	"net/http"

	"library-lending/internal/domain/bookrequest"
	"library-lending/internal/domain/user"
	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookRequestHandler struct {
	cmds commands.BookRequestCommands
	q    queries.BookRequestQueries
}

func NewBookRequestHandler(cmds commands.BookRequestCommands, q queries.BookRequestQueries) *BookRequestHandler {
	return &BookRequestHandler{cmds: cmds, q: q}
}

// @Summary Suggest a title
// @Description Patrons ask the library to acquire a book
// @Tags book-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitBookRequestRequest true "Suggestion"
// @Success 201 {object} resdto.BookRequestResponse
// @Failure 400 {object} httperr.Response
// @Router /api/book-requests [post]
func (h *BookRequestHandler) Submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.SubmitBookRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	submission, err := req.ToSubmission()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.SubmitBookRequest(c.Request.Context(), actor, submission)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookRequest(r))
}

// @Summary List book requests
// @Tags book-requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param user_id query string false "User ID (staff only)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.BookRequestResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/book-requests [get]
func (h *BookRequestHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var query reqdto.BookRequestListQuery
	if !bindQuery(c, &query) {
		return
	}
	filter := queries.BookRequestFilter{
		UserID: optionalID(query.UserID),
		Status: bookrequest.Status(query.Status),
	}
	items, next, err := h.q.List(c.Request.Context(), actor, filter, query.Cursor(), query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(resdto.FromBookRequestViews(items), next))
}

// @Summary Approve book request
// @Tags book-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book request ID"
// @Success 200 {object} resdto.BookRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/book-requests/{id}/approve [post]
func (h *BookRequestHandler) Approve(c *gin.Context) {
	h.resolve(c, h.cmds.ApproveBookRequest)
}

// @Summary Reject book request
// @Tags book-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book request ID"
// @Success 200 {object} resdto.BookRequestResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/book-requests/{id}/reject [post]
func (h *BookRequestHandler) Reject(c *gin.Context) {
	h.resolve(c, h.cmds.RejectBookRequest)
}

func (h *BookRequestHandler) resolve(c *gin.Context, fn func(context.Context, user.Actor, uuid.UUID) (*bookrequest.BookRequest, error)) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	r, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookRequest(r))
}
