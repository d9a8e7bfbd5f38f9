package cookie

import (
	"github.com/gin-gonic/gin"
)

// Set by the identity provider's browser SDK; the service only reads it.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
