package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/executivemachines/rental-api/internal/utils"
)

// AuthMiddleware rejects requests without a valid Bearer token. A
// missing header is 401; a header carrying an invalid or expired token
// is 403. On success the decoded claims are placed on the context for
// handlers to use.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "Unauthorized"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "Forbidden"})
			return
		}

		c.Set("claims", claims)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
