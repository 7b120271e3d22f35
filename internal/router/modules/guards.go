package modules

import "github.com/gin-gonic/gin"

// Guards are the route-level middlewares shared by the feature modules.
// Every field must be non-nil.
type Guards struct {
	Auth   gin.HandlerFunc // rejects anonymous callers
	Login  gin.HandlerFunc // limiter for credential checks
	Signup gin.HandlerFunc // limiter for account registration
	Write  gin.HandlerFunc // limiter for authenticated writes
}

// writes is the chain placed in front of every authenticated mutation.
func (g Guards) writes(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Auth, g.Write, h}
}
