package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "session_id"

// Session issues a session cookie holding a random id and exposes the id to
// handlers. The cookie's max age is refreshed on every request.
func Session(cookieName string, ttl time.Duration, secure bool) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = "event_board_session"
	}
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, int(ttl.Seconds()), "/", "", secure, true)
		c.Set(sessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the session id assigned by Session.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
