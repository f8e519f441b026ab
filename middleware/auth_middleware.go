package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/issuetrack-api/metrics"
	"github.com/issuetrack-api/models"
)

const (
	AccessTokenCookie = "access_token"
	principalKey      = "principal"
)

// Authenticator turns a bearer token into a principal
type Authenticator interface {
	Authenticate(token string) (models.Principal, error)
}

// AuthMiddleware requires a valid token from the Authorization header or the
// access_token cookie and stores the principal in the context.
func AuthMiddleware(auth Authenticator, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			m.RecordAuth("missing")
			abortUnauthenticated(c)
			return
		}

		principal, err := auth.Authenticate(token)
		if err != nil {
			m.RecordAuth("invalid")
			abortUnauthenticated(c)
			return
		}
		m.RecordAuth("ok")

		c.Set(principalKey, principal)
		c.Set("userId", principal.UserID)
		c.Set("role", string(principal.Role))
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"reason":  "Unauthenticated",
		"message": "Authentication required",
	})
}

// GetPrincipal returns the principal stored by AuthMiddleware
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	principal, ok := v.(models.Principal)
	return principal, ok
}
