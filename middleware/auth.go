package middleware

import (
	"net/http"
	"strings"

	"petcare/models"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and stores the caller identity
// in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(actorKey, models.Actor{ID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// GetActor retrieves the caller identity set by AuthMiddleware.
func GetActor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}
