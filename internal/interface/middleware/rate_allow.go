package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc reports whether a request bypasses the rate limit.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP bypasses requests from loopback and private networks.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowAdmin bypasses requests made by an admin caller.
func AllowAdmin() AllowFunc {
	return func(c *gin.Context) bool {
		return CallerFrom(c).IsAdmin()
	}
}

// AllowAny bypasses when any of fns does. Nil entries are skipped.
func AllowAny(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
