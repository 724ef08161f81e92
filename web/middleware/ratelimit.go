// Package middleware contains gin middleware shared by the shop routes.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/web/cache"
)

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
	Methods           []string
	OnLimit           func(c *gin.Context)
}

// DefaultRateLimitConfig limits every method per client IP.
func DefaultRateLimitConfig(requestsPerMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: requestsPerMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		OnLimit: func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"msg":     "Demasiados intentos. Inténtalo de nuevo más tarde.",
			})
		},
	}
}

func (config RateLimitConfig) applies(method string) bool {
	if len(config.Methods) == 0 {
		return true
	}
	for _, m := range config.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// RateLimitMiddleware counts requests per key and path in one-minute windows.
// When Redis is unavailable requests pass through.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RequestsPerMinute <= 0 || !config.applies(c.Request.Method) {
			c.Next()
			return
		}

		key := config.KeyFunc(c)
		rateLimitKey := "tienda:ratelimit:" + key + ":" + c.FullPath()

		count, err := cache.Incr(c.Request.Context(), rateLimitKey, time.Minute)
		if err != nil {
			logger.Warning("Rate limit increment failed:", err)
			c.Next()
			return
		}

		remaining := config.RequestsPerMinute - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > config.RequestsPerMinute {
			logger.Warningf("Rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, count)
			if ttl, err := cache.TTL(c.Request.Context(), rateLimitKey); err == nil && ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
			}
			config.OnLimit(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
