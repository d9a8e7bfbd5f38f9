package api

import (
	"net/http"

	resdto "library-lending/internal/handler/dto/response"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the identity seen by the service. Sign-in and token refresh belong
// to the identity provider.
type AuthHandler struct {
	q queries.UserQueries
}

func NewAuthHandler(q queries.UserQueries) *AuthHandler {
	return &AuthHandler{q: q}
}

// @Summary Current user
// @Description Identity of the bearer token, enriched with the mirrored profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	profile, err := h.q.GetCurrentUser(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserProfile(profile))
}
