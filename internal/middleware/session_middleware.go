package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "storefront_session"
	sessionKey        = "session_id"

	// Session cookies live for a year so carts, wishlists and order
	// history survive restarts on the same device.
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// SessionMiddleware assigns each device a stable session id via cookie.
// All storefront state (cart, wishlist, orders) hangs off this id, so it
// is minted before any handler runs.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session id set by SessionMiddleware.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
