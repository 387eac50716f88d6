package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys for the logged-in user. Values are a uint id and a string
// username; both gob-encode cleanly into the cookie store.
const (
	SessionUserIDKey   = "user_id"
	SessionUsernameKey = "username"
)

// RequireLogin gates write routes: anonymous requests are flashed an
// informational message and sent to the login page, which brings them back
// via the "next" parameter after a successful login.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(SessionUserIDKey) == nil {
			session.AddFlash("Please log in to continue.")
			_ = session.Save()
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// BodyLimit caps the request body so an oversized upload fails the read
// instead of being buffered.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// CurrentUsername returns the logged-in username, or "" for anonymous.
func CurrentUsername(c *gin.Context) string {
	if name, ok := sessions.Default(c).Get(SessionUsernameKey).(string); ok {
		return name
	}
	return ""
}
