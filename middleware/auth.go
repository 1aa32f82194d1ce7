package middleware

import (
	"net/http"
	"strings"

	"food-delivery/models"
	"food-delivery/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// TokenValidator is satisfied by *utils.TokenIssuer.
type TokenValidator interface {
	ValidateToken(token string, want utils.TokenType) (*utils.Claims, error)
}

func abort(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}

// AuthMiddleware accepts only access tokens and stores the caller as a
// models.Actor on the context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required", models.CodeUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", models.CodeUnauthorized)
			return
		}

		claims, err := tokens.ValidateToken(tokenParts[1], utils.TokenAccess)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", models.CodeUnauthorized)
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token subject", models.CodeUnauthorized)
			return
		}

		c.Set(actorKey, actor)
		c.Set("user_id", actor.ID)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not listed. It must run after
// AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Authentication required", models.CodeUnauthorized)
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Access denied. Insufficient role", models.CodeForbidden)
	}
}

func ActorFrom(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := value.(models.Actor)
	return actor, ok
}
