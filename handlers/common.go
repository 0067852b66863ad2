package handlers

import (
	"net/http"

	"masarra/middleware"

	"github.com/gin-gonic/gin"
)

// currentUser retrieves the authenticated user id from the gin context
// (set by JWTAuthUserMiddleware). It aborts with 401 when absent.
func currentUser(c *gin.Context) (string, bool) {
	userIDValue, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	userID, ok := userIDValue.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID in context"})
		return "", false
	}
	return userID, true
}

// currentToken retrieves the raw bearer token for forwarding upstream.
func currentToken(c *gin.Context) string {
	tokenValue, exists := c.Get(middleware.ContextUserTokenKey)
	if !exists {
		return ""
	}
	token, _ := tokenValue.(string)
	return token
}
