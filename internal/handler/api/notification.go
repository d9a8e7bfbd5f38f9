package api

import (
	"net/http"

	reqdto "library-lending/internal/handler/dto/request"
	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/commands"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	cmds commands.NotificationCommands
	q    queries.NotificationQueries
}

func NewNotificationHandler(cmds commands.NotificationCommands, q queries.NotificationQueries) *NotificationHandler {
	return &NotificationHandler{cmds: cmds, q: q}
}

// @Summary List notifications
// @Description Newest first, with the caller's unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Only unread notifications"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.NotificationListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var query reqdto.NotificationListQuery
	if !bindQuery(c, &query) {
		return
	}
	p, err := h.q.List(c.Request.Context(), actor, query.UnreadOnly, query.Cursor(), query.Limit)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromNotificationPage(p))
}

// @Summary Mark notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	if err := h.cmds.MarkRead(c.Request.Context(), actor, id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type markAllReadResponse struct {
	Marked int64 `json:"marked"`
}

// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} markAllReadResponse
// @Router /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	n, err := h.cmds.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, markAllReadResponse{Marked: n})
}
