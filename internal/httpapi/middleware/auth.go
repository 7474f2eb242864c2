package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates API requests. It accepts a bearer access
// token or HTTP basic credentials and puts the caller's identity into the
// request context for handlers to use.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		switch parts[0] {
		case "Bearer":
			claims, err := authService.ValidateAccessToken(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				c.Abort()
				return
			}
			c.Set("userID", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("isStaff", claims.IsStaff)

		case "Basic":
			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid basic credentials"})
				c.Abort()
				return
			}
			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid basic credentials"})
				c.Abort()
				return
			}
			user, err := authService.VerifyCredentials(creds[0], creds[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				c.Abort()
				return
			}
			c.Set("userID", user.ID)
			c.Set("email", user.Email)
			c.Set("isStaff", user.IsStaff)

		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unsupported authorization scheme"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin allows only staff users past. AuthMiddleware must run first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		staffValue, exists := c.Get("isStaff")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}

		isStaff, ok := staffValue.(bool)
		if !ok || !isStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
