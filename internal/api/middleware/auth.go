package middleware

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie identifies the shopper's browser session for server-held
// session state (compare list, popup flag).
const SessionCookie = "sf_session"

const sessionContextKey = "session_id"

// assetExtensions are request paths the auth-cookie promotion skips.
var assetExtensions = map[string]bool{
	".js": true, ".css": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".svg": true, ".ico": true, ".webp": true, ".woff": true,
	".woff2": true, ".ttf": true, ".map": true,
}

// PromoteAuthCookie copies the auth cookie into an Authorization header
// for page requests. API requests are deliberately excluded - they must
// send the header directly - and asset requests never need credentials.
func PromoteAuthCookie(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/") || p == "/api" || assetExtensions[path.Ext(p)] {
			c.Next()
			return
		}

		if c.GetHeader("Authorization") == "" {
			if token, err := c.Cookie(cookieName); err == nil && token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}

		c.Next()
	}
}

// Session ensures every request carries a session ID, minting one in a
// cookie when the browser has none yet.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, 60*60*24*30, "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// SessionID returns the request's session ID set by Session.
func SessionID(c *gin.Context) string {
	if sid, ok := c.Get(sessionContextKey); ok {
		if s, ok := sid.(string); ok {
			return s
		}
	}
	return ""
}
