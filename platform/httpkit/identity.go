// Package httpkit provides HTTP utilities including client identity extraction.
package httpkit

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientKey derives the per-client identifier used for request throttling.
// Resolution order: first entry of X-Forwarded-For, then X-Real-IP, then the
// direct connection's remote address.
func ClientKey(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}

	return "unknown"
}
