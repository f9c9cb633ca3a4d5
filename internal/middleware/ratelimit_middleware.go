package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit enforces a per-client-IP token bucket of ratePerMinute requests,
// with a small burst. Used on the cinebot route since every request costs a
// model inference plus several provider calls.
func RateLimit(ratePerMinute int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limit := rate.Every(time.Minute / time.Duration(ratePerMinute))
	burst := ratePerMinute / 4
	if burst < 1 {
		burst = 1
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
