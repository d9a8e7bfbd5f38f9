package api

import (
	"net/http"

	"library-lending/internal/domain/user"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/handler/middleware"
	"library-lending/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errNoActor = errs.Mark(errs.New("no authenticated actor in context"), errs.ErrUnauthenticated)

func actorFrom(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoActor, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// optionalID parses an already validated query value.
func optionalID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, q any) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return false
	}
	return true
}
