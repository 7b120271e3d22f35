package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
	"github.com/oksasatya/go-hbnb/pkg/response"
)

const (
	CtxCallerKey = "caller"
	CtxUserIDKey = "userID"
)

// tokenFrom prefers the Authorization header over the access_token cookie.
func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	tok, err := c.Cookie(helpers.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return tok
}

// JWTCaller resolves the caller from the access token. Requests without a
// token proceed as policy.Anonymous; a token that fails validation is
// rejected outright.
func JWTCaller(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.Set(CtxCallerKey, policy.Anonymous)
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		caller := policy.Caller{ID: claims.UserID, Role: policy.RoleUser}
		if claims.IsAdmin {
			caller.Role = policy.RoleAdmin
		}
		c.Set(CtxCallerKey, caller)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireAuth rejects anonymous callers. It must run after JWTCaller.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).Authenticated() {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom returns the caller set by JWTCaller, or policy.Anonymous.
func CallerFrom(c *gin.Context) policy.Caller {
	if v, ok := c.Get(CtxCallerKey); ok {
		if caller, ok := v.(policy.Caller); ok {
			return caller
		}
	}
	return policy.Anonymous
}
