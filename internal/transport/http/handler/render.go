package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"blogpost/internal/transport/http/middleware"
)

// flash queues a one-shot message for the next rendered page.
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// takeFlashes drains queued flash messages; reading them mutates the
// session, so it must be saved again for the cookie to clear.
func takeFlashes(c *gin.Context) []interface{} {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) > 0 {
		_ = session.Save()
	}
	return flashes
}

// pageData is the common payload every template receives, merged with any
// page-specific fields.
func pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"Username": middleware.CurrentUsername(c),
		"Flashes":  takeFlashes(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "notfound.html", pageData(c, nil))
}

func renderError(c *gin.Context, message string) {
	c.HTML(http.StatusInternalServerError, "error.html", pageData(c, gin.H{
		"Message": message,
	}))
}
