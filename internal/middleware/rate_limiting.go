package middleware

import (
	"net/http"
	"strings"
	"time"

	"clinicsite-backend/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits request rate per IP. It requires a
// RateLimitManager to be set in the context by the application.
func RateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shouldBypassRateLimit(c.Request) {
			c.Next()
			return
		}

		managerVal, exists := c.Get("rateLimitManager")
		if !exists {
			c.Next()
			return
		}

		manager, ok := managerVal.(*RateLimitManager)
		if !ok || manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)

		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UploadRateLimitMiddleware applies a tighter per-IP budget to uploads.
func UploadRateLimitMiddleware(requestsPerWindow, windowSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		managerVal, exists := c.Get("rateLimitManager")
		if !exists {
			c.Next()
			return
		}

		manager, ok := managerVal.(*RateLimitManager)
		if !ok || manager == nil {
			c.Next()
			return
		}

		limiter := manager.GetUploadLimiter(c.ClientIP(), requestsPerWindow, windowSeconds)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many uploads, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request) bool {
	if r == nil || r.URL == nil {
		return false
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	if path == "" {
		return false
	}

	staticPrefixes := []string{
		"/uploads/",
		"/assets/",
	}

	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	switch path {
	case "/favicon.ico", "/health":
		return true
	}

	return false
}
