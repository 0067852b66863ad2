package middleware

import (
	"net/http"
	"strings"

	"masarra/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthUserMiddleware.
const (
	ContextUserIDKey    = "userID"
	ContextUserTokenKey = "userToken"
)

// JWTAuthUserMiddleware validates the Bearer token and stores the user id
// and the raw token (forwarded to the upstream backend) in the gin context.
// Tokens are issued by the upstream identity service; this layer only
// verifies them.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Recover from unexpected panics.
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, err := utils.ExtractUserIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserTokenKey, tokenString)
		c.Next()
	}
}
