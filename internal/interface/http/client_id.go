package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/page-summarizer/internal/domain/ratelimit"
)

// ClientIdentifier names the caller for rate limiting. It never fails.
type ClientIdentifier func(c *gin.Context) string

// RemoteClientID uses the connection's remote address. Forwarding headers
// only count when the peer is a configured trusted proxy.
func RemoteClientID(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return ratelimit.UnknownClient
}
