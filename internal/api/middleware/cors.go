package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsPolicy origins allowed to call the API from the browser console
type corsPolicy struct {
	origins   map[string]bool
	anyOrigin bool
}

func newCORSPolicy(allowOrigins []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool, len(allowOrigins))}
	for _, o := range allowOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			p.anyOrigin = true
			continue
		}
		p.origins[o] = true
	}
	return p
}

func (p corsPolicy) allows(origin string) bool {
	return origin != "" && (p.anyOrigin || p.origins[origin])
}

// CORS reflects an allowed Origin back with credentials enabled; "*" in the
// list allows any origin. Content-Disposition is exposed so the console can
// name downloaded exports and receipts.
func CORS(allowOrigins []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowOrigins)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		if origin := c.GetHeader("Origin"); policy.allows(origin) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition, "+requestIDHeader)
			if c.Request.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+requestIDHeader)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")
				h.Set("Access-Control-Max-Age", "600")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
