package middleware

import (
	"net/http"
	"strings"

	"errandly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// JWTAuthMiddleware validates the bearer token, verifies it is still the
// user's active session, and stores the resolved identity in the context.
// The core trusts this identity without re-verifying.
func JWTAuthMiddleware(sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		claims, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if sessions != nil {
			active, err := utils.CheckSessionToken(sessions, claims.UserID, tokenString)
			if err != nil || !active {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// CallerID returns the authenticated user's ID from the context.
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CallerRole returns the authenticated user's role from the context.
func CallerRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}
