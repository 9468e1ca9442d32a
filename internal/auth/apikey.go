package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderName is the request header carrying the shared-secret API key.
const HeaderName = "X-Api-Key"

// APIKey returns a middleware enforcing the static shared-secret header
// on the routes it guards. Health and metrics endpoints are registered
// outside the guarded group. An unconfigured key refuses all requests
// rather than letting them through.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			slog.Warn("API key is not configured; refusing request", "path", c.Request.URL.Path)
			unauthorized(c)
			return
		}

		provided := c.GetHeader(HeaderName)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			unauthorized(c)
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
