package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"library-lending/internal/domain/user"
	"library-lending/internal/handler/httperr"
	"library-lending/internal/pkg/cookie"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errTokenRequired     = errs.Mark(errs.New("access token required"), errs.ErrUnauthenticated)
	errInsufficientRole  = errs.Wrap(errs.ErrForbidden, "insufficient permissions")
	errActorMissingInCtx = errs.New("actor missing from context; RequireAuth not applied")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// should be used after RequireAuth()
			httperr.AbortWithError(c, http.StatusInternalServerError, errActorMissingInCtx, "Internal server error", nil)
			return
		}

		if !actor.Role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// cookie first, then the Authorization header
func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxUserIDKey, actor.ID)
	c.Set(ctxUserRoleKey, actor.Role)
}

func GetActor(c *gin.Context) (user.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return user.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Actor{}, false
	}
	return user.NewActor(id, role), true
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}
