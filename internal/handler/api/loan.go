package api

import (
	"context"
	"net/http"

	"library-lending/internal/domain/loan"
	"library-lending/internal/domain/user"
	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	cmds commands.LendingCommands
	q    queries.LoanQueries
}

func NewLoanHandler(cmds commands.LendingCommands, q queries.LoanQueries) *LoanHandler {
	return &LoanHandler{cmds: cmds, q: q}
}

// @Summary Issue a book
// @Description Takes one copy off the shelf and opens a loan due after the loan period.
// @Description Staff may issue on behalf of a patron with user_id.
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.IssueBookRequest true "Issue request"
// @Success 201 {object} resdto.LoanResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "out of stock or duplicate open loan"
// @Failure 503 {object} httperr.Response
// @Router /api/loans [post]
func (h *LoanHandler) Issue(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.IssueBookRequest
	if !bindJSON(c, &req) {
		return
	}
	l, err := h.cmds.IssueBook(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respond(c, http.StatusCreated, actor, l)
}

// @Summary List loans
// @Description Members see their own loans; staff may filter by user and book
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "open, return_requested, returned or overdue"
// @Param user_id query string false "User ID (staff only)"
// @Param book_id query string false "Book ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.LoanResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var query reqdto.LoanListQuery
	if !bindQuery(c, &query) {
		return
	}
	filter := queries.LoanFilter{
		UserID: optionalID(query.UserID),
		BookID: optionalID(query.BookID),
		Status: queries.LoanStatusFilter(query.Status),
	}
	items, next, err := h.q.List(c.Request.Context(), actor, filter, query.Cursor(), query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(resdto.FromLoanViews(items), next))
}

// @Summary Get loan
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	h.respondByID(c, http.StatusOK, actor, id)
}

// @Summary Request return
// @Description The holder asks staff to confirm the return
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/loans/{id}/return-request [post]
func (h *LoanHandler) RequestReturn(c *gin.Context) {
	h.transition(c, h.cmds.RequestReturn)
}

// @Summary Approve return
// @Description Closes the loan, puts the copy back and assesses the late fee
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/loans/{id}/return-approve [post]
func (h *LoanHandler) ApproveReturn(c *gin.Context) {
	h.transition(c, h.cmds.ApproveReturn)
}

// @Summary Reject return
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} resdto.LoanResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/loans/{id}/return-reject [post]
func (h *LoanHandler) RejectReturn(c *gin.Context) {
	h.transition(c, h.cmds.RejectReturn)
}

type loanTransition func(ctx context.Context, actor user.Actor, id uuid.UUID) (*loan.Loan, error)

func (h *LoanHandler) transition(c *gin.Context, fn loanTransition) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	l, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respond(c, http.StatusOK, actor, l)
}

func (h *LoanHandler) respond(c *gin.Context, status int, actor user.Actor, l *loan.Loan) {
	h.respondByID(c, status, actor, l.ID())
}

func (h *LoanHandler) respondByID(c *gin.Context, status int, actor user.Actor, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(status, resdto.FromLoanView(view))
}
