package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"psmestate/internal/models"
	"psmestate/internal/utils"
)

// AuthRequired validates the bearer token and sets user context.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// AdminRequired ensures the authenticated user has the admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(models.RoleAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// EditorRequired allows editors and admins. Editors manage content but not
// users or invites.
func EditorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || (roleStr != string(models.RoleAdmin) && roleStr != string(models.RoleEditor)) {
			utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", "Editor access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIKeyRequired protects machine endpoints like the listing import feed.
func APIKeyRequired(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}
