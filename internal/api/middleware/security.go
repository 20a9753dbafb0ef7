package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// receiptCSP the printable SIJ page is a self-contained document with an
// inline stylesheet and nothing else.
const receiptCSP = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// SecurityHeaders hardening headers. API responses carry transaction and
// driver data so they are never cached by intermediaries.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", receiptCSP)
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			h.Set("Cache-Control", "no-store")
		}

		c.Next()
	}
}
