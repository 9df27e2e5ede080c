package middleware

import (
	"net/http"

	"mediarate/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks for a valid bearer token in the Authorization header
// and puts the resolved user id into the request context for handlers.
func AuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokens.ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			c.Abort()
			return
		}

		userID, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("token", token)
		c.Next()
	}
}
