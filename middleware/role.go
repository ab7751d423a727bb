package middleware

import (
	"net/http"

	"petcare/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects the request unless the authenticated caller holds one
// of the allowed roles. It must run after AuthMiddleware.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if err := utils.RequireRole(actor.Role, allowed...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}
		c.Next()
	}
}
