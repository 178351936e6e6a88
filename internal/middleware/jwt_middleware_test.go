package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(mw *JWTMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/me", mw.Handle(), func(c *gin.Context) {
		c.String(http.StatusOK, GetAccountID(c).String())
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	limiter := NewInvalidAuthRateLimiter(5, time.Minute)
	defer limiter.Stop()
	r := newProtectedRouter(NewJWTMiddleware("secret", limiter))

	token, err := utils.GenerateJWT("secret", "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid", header: "Bearer " + token, status: http.StatusOK, body: "alice"},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestJWTMiddlewareThrottlesInvalidTokens(t *testing.T) {
	limiter := NewInvalidAuthRateLimiter(2, time.Minute)
	defer limiter.Stop()
	r := newProtectedRouter(NewJWTMiddleware("secret", limiter))

	send := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send("Bearer bad"))
	assert.Equal(t, http.StatusUnauthorized, send("Bearer bad"))

	token, err := utils.GenerateJWT("secret", "alice", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, send("Bearer "+token))
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter := NewInvalidAuthRateLimiter(1, time.Minute)
	defer limiter.Stop()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.nowFn = func() time.Time { return now }

	assert.True(t, limiter.Allow("1.2.3.4"))
	assert.False(t, limiter.Allow("1.2.3.4"))
	assert.True(t, limiter.Blocked("1.2.3.4"))
	assert.False(t, limiter.Blocked("5.6.7.8"))

	now = now.Add(2 * time.Minute)
	assert.False(t, limiter.Blocked("1.2.3.4"))
	assert.True(t, limiter.Allow("1.2.3.4"))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"shop.paydii.id"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://shop.paydii.id:443")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://shop.paydii.id:443", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
