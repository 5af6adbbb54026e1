package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionIDHeader identifies the client session. Each browser/app instance
// generates one and sends it on every request.
const SessionIDHeader = "X-Session-ID"

// SessionKey is the gin context key the resolved session ID is stored under.
const SessionKey = "sessionID"

// SessionMiddleware extracts the client session ID and stores it in the
// request context. Requests without one are rejected; the session aggregate
// is keyed by this ID.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionIDHeader)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing session details: X-Session-ID"})
			return
		}
		c.Set(SessionKey, sid)
		c.Next()
	}
}
