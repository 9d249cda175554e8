package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/auth"
)

// AdminAuth guards the admin surface. Accepts a Bearer token in the
// Authorization header, with a cookie fallback for browser sessions.
func AdminAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(jwtSecret, tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			response.Error(c, http.StatusForbidden, "Insufficient privileges", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAdminSubject), claims.Subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("admin_token"); err == nil {
		return cookie
	}
	return ""
}
