package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hbnb/internal/domain/policy"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func callerEngine(jwt *helpers.JWTManager) (*gin.Engine, *policy.Caller) {
	seen := &policy.Caller{}
	r := gin.New()
	r.Use(JWTCaller(jwt))
	r.GET("/who", func(c *gin.Context) {
		*seen = CallerFrom(c)
		c.Status(http.StatusOK)
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r, seen
}

func TestJWTCaller(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour, "hbnb")
	r, seen := callerEngine(jwt)

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Anonymous, *seen)

	tok, _, err := jwt.GenerateAccessToken("u1", false)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = serve(t, r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Caller{ID: "u1", Role: policy.RoleUser}, *seen)

	admin, _, err := jwt.GenerateAccessToken("a1", true)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: admin})
	w = serve(t, r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, policy.Caller{ID: "a1", Role: policy.RoleAdmin}, *seen)

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = serve(t, r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour, "hbnb")
	r, _ := callerEngine(jwt)

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")

	tok, _, err := jwt.GenerateAccessToken("u1", false)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = serve(t, r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestIDKey)) })

	w := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = serve(t, r, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, "1.1.1.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "3.3.3.3"}, "3.3.3.3"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "4.4.4.4, 10.0.0.1"}, "4.4.4.4"},
		{"garbage falls back", map[string]string{"CF-Connecting-IP": "nope"}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			w := serve(t, r, req)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestAllowFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Set(CtxRealIPKey, "10.1.2.3")
	assert.True(t, AllowPrivateIP()(c))
	c.Set(CtxRealIPKey, "8.8.8.8")
	assert.False(t, AllowPrivateIP()(c))

	assert.False(t, AllowAdmin()(c))
	c.Set(CtxCallerKey, policy.Caller{ID: "a1", Role: policy.RoleAdmin})
	assert.True(t, AllowAdmin()(c))

	assert.True(t, AllowAny(nil, AllowPrivateIP(), AllowAdmin())(c))
	assert.False(t, AllowAny()(c))
}

func TestRateLimitKeys(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set(CtxRealIPKey, "8.8.8.8")

	assert.Equal(t, "rl:signup:ip:8.8.8.8", KeyByIP("signup")(c))
	assert.Equal(t, "rl:path:/x:ip:8.8.8.8", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:8.8.8.8", KeyByUserID()(c))
	c.Set(CtxCallerKey, policy.Caller{ID: "u1", Role: policy.RoleUser})
	assert.Equal(t, "rl:user:u1", KeyByUserID()(c))
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP("t"), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := serve(t, r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
