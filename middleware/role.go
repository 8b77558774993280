package middleware

import (
	"net/http"

	"errandly/models"

	"github.com/gin-gonic/gin"
)

// RequireRole aborts the request unless the authenticated caller has one
// of the allowed roles. Deep ownership checks stay in the services; this
// only keeps obviously wrong roles off the route.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := models.UserRole(CallerRole(c))
		for _, role := range roles {
			if callerRole == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}
