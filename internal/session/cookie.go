package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxSessionID = "session_id"

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Middleware makes sure every browser request carries a session id cookie and
// exposes it through ID. Anything that is not a well-formed id is replaced.
func Middleware(cfg CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.Name)
		if err != nil || uuid.Validate(sid) != nil {
			sid = NewID()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Name, sid, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

// ID returns the session id set by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
