package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaweb/tienda/web/cache"
)

func TestRateLimitOnlyCountsConfiguredMethods(t *testing.T) {
	require.NoError(t, cache.InitRedis(context.Background(), ""))
	defer cache.Close()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	cfg := DefaultRateLimitConfig(2)
	cfg.Methods = []string{http.MethodPost}
	limiter := RateLimitMiddleware(cfg)
	engine.GET("/login", limiter, func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.POST("/login", limiter, func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = "10.0.0.7:4321"
		engine.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost).Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPost).Code)
	limited := do(http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(http.MethodGet).Code)
	}
}

func TestRateLimitPassesWithoutRedis(t *testing.T) {
	require.NoError(t, cache.Close())
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/", RateLimitMiddleware(DefaultRateLimitConfig(1)), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	known := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, known)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, known, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
}
