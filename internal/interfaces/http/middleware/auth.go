// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/ayuraa/wellness-backend/internal/domain/identity"
	"github.com/ayuraa/wellness-backend/internal/pkg/apperr"
	"github.com/ayuraa/wellness-backend/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	userKey  = "user"
	tokenKey = "access_token"
)

// Authenticator resolves bearer tokens
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		token := auth.ExtractTokenFromHeader(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "Invalid or expired token"
			if apperr.Is(err, apperr.Unavailable) {
				status = apperr.HTTPStatus(err)
				msg = apperr.PublicMessage(err)
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present and
// lets anonymous requests through.
func OptionalAuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		if user, err := authn.Authenticate(c.Request.Context(), token); err == nil {
			c.Set(userKey, user)
			c.Set(tokenKey, token)
		}
		c.Next()
	}
}

// GetUserFromContext returns the authenticated user
func GetUserFromContext(c *gin.Context) (*identity.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*identity.User)
	return user, ok && user != nil
}

// GetUserIDFromContext returns the authenticated user's id
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return "", false
	}
	return user.ID, true
}

// GetTokenFromContext returns the bearer token of the request
func GetTokenFromContext(c *gin.Context) (string, bool) {
	token := c.GetString(tokenKey)
	return token, token != ""
}
