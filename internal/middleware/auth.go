package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/token"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// ClearSessionCookie drops the session cookie so a poisoned token is
// not resubmitted on every request.
func ClearSessionCookie(c *gin.Context, production bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(token.CookieName, "", -1, "/", "", production, true)
}

// SetSessionCookie installs the signed credential for token.TTL.
func SetSessionCookie(c *gin.Context, raw string, production bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(token.CookieName, raw, int(token.TTL.Seconds()), "/", "", production, true)
}

func AuthMiddleware(issuer *token.Issuer, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(token.CookieName)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			ClearSessionCookie(c, production)
			if errors.Is(err, token.ErrExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token_expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireRoles authorizes only identities whose role is in the
// allow-set. AuthMiddleware must run first.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		role, ok := roleVal.(models.Role)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_permissions"})
			return
		}

		c.Next()
	}
}

// Identity reads the authenticated user from the gin context.
func Identity(c *gin.Context) (uint, models.Role, bool) {
	idVal, ok1 := c.Get(ContextUserID)
	roleVal, ok2 := c.Get(ContextUserRole)
	if !ok1 || !ok2 {
		return 0, "", false
	}

	id, ok1 := idVal.(uint)
	role, ok2 := roleVal.(models.Role)
	if !ok1 || !ok2 {
		return 0, "", false
	}
	return id, role, true
}
