//go:build unit

package api_test

import (
	"net/http"

	"library-lending/internal/domain/user"
	"library-lending/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bearer = "bearer-token"

var (
	memberActor    = user.NewActor(uuid.MustParse("5b0c1d2e-3f40-4a51-8b62-7c83d94ea5f6"), user.RoleMember)
	librarianActor = user.NewActor(uuid.MustParse("0a1b2c3d-4e5f-4061-8273-94a5b6c7d8e9"), user.RoleLibrarian)
)

// fakeAuth stands in for the JWT middleware; *actor is read per request so a test can
// switch roles between calls.
func fakeAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetActor(c, *actor)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}
