package middleware

import (
	"net/http"
	"storefront/internal/models"
	"storefront/internal/redis"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

func sessionFromRequest(c *gin.Context, sessions *redis.Client) *redis.SessionData {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil
	}
	session, err := sessions.GetSession(token)
	if err != nil {
		return nil
	}
	return session
}

// OptionalAuth attaches the caller's identity when a valid session token is
// present, and lets the request through either way. Used for checkout, which
// serves both logged-in and anonymous customers.
func OptionalAuth(sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session := sessionFromRequest(c, sessions); session != nil {
			c.Set(ContextUserID, session.UserID)
			c.Set(ContextRole, session.Role)
		}
		c.Next()
	}
}

func RequireAuth(sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromRequest(c, sessions)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ContextUserID, session.UserID)
		c.Set(ContextRole, session.Role)
		c.Next()
	}
}

func RequireAdmin(sessions *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFromRequest(c, sessions)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if session.Role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(ContextUserID, session.UserID)
		c.Set(ContextRole, session.Role)
		c.Next()
	}
}
