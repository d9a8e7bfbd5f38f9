package api

import (
	"context"
	"net/http"

	"library-lending/internal/domain/reservation"
	"library-lending/internal/domain/user"
	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve either a book or an open loan held by the caller. Exactly one of
// @Description book_id and loan_id must be set.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation target"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.cmds.CreateReservation(c.Request.Context(), actor, req.ToCommand())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(r))
}

// @Summary List reservations
// @Description Members see their own reservations; staff see all
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved, rejected or cancelled"
// @Param user_id query string false "User ID (staff only)"
// @Param book_id query string false "Book ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.ReservationResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var query reqdto.ReservationListQuery
	if !bindQuery(c, &query) {
		return
	}
	filter := queries.ReservationFilter{
		UserID: optionalID(query.UserID),
		BookID: optionalID(query.BookID),
		Status: reservation.Status(query.Status),
	}
	items, next, err := h.q.List(c.Request.Context(), actor, filter, query.Cursor(), query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewPage(resdto.FromReservationViews(items), next))
}

// @Summary Approve reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/approve [post]
func (h *ReservationHandler) Approve(c *gin.Context) {
	h.resolve(c, h.cmds.ApproveReservation)
}

// @Summary Reject reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/reject [post]
func (h *ReservationHandler) Reject(c *gin.Context) {
	h.resolve(c, h.cmds.RejectReservation)
}

// @Summary Cancel reservation
// @Description Only the patron who reserved may cancel a pending reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.resolve(c, h.cmds.CancelReservation)
}

func (h *ReservationHandler) resolve(c *gin.Context, fn func(context.Context, user.Actor, uuid.UUID) (*reservation.Reservation, error)) {
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
	c.JSON(http.StatusOK, resdto.FromReservation(r))
}
