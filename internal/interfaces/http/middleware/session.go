package middleware

import (
	"net/http"
	"strconv"

	"github.com/ayuraa/wellness-backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session cookie and headers
const (
	SessionCookie       = "session_id"
	SessionHeader       = "X-Session-ID"
	ViewportWidthHeader = "X-Viewport-Width"
	sessionKey          = "session_id"
	maxSessionIDLength  = 64
)

// Session makes sure every storefront request carries a session id. The id
// comes from the X-Session-ID header or the session cookie; a new one is
// issued and set as a cookie otherwise.
func Session(cfg *config.Config) gin.HandlerFunc {
	maxAge := int(cfg.Storefront.SessionTTL.Seconds())
	if maxAge <= 0 {
		maxAge = 86400
	}

	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if !validSessionID(id) {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", cfg.Security.SecureCookies, true)
		c.Header(SessionHeader, id)

		c.Set(sessionKey, id)
		c.Next()
	}
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')) {
			return false
		}
	}
	return true
}

// GetSessionID returns the storefront session id of the request
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// ViewportWidth returns the client's reported viewport width, or 0 when it
// is unknown.
func ViewportWidth(c *gin.Context) int {
	w, err := strconv.Atoi(c.GetHeader(ViewportWidthHeader))
	if err != nil || w < 0 {
		return 0
	}
	return w
}
