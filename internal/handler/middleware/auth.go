package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	validator *token.Validator
}

const ctxActorKey = "actor"

func NewAuthMiddleware(validator *token.Validator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tok string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tok = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if tok == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		actor, err := m.validator.Validate(tok)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxActorKey, actor)
		c.Set("jwt_claims", map[string]any{
			"actor_id": actor.ID.String(),
			"unit":     actor.Unit,
		})
		c.Next()
	}
}

// RequireCapability rejects callers lacking the capability before the
// usecase is even entered. Ownership-based access still needs the usecase's
// own check, so this is only mounted on staff-only routes.
func (m *AuthMiddleware) RequireCapability(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !actor.Can(action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetActor(c *gin.Context) (authz.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return authz.Actor{}, false
	}

	actor, ok := v.(authz.Actor)
	return actor, ok
}
