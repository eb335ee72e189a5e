package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"gadget-store/models"
)

type visitorWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a process-local fixed-window counter keyed by client. Each
// process keeps its own counters; behind multiple replicas the effective
// limit is per replica.
type RateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	now      func() time.Time
	visitors map[string]*visitorWindow
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:   window,
		max:      max,
		now:      time.Now,
		visitors: make(map[string]*visitorWindow),
	}
}

// Allow reports whether the key has budget left in its current window. The
// first request after a window lapses starts a fresh one.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok || now.After(v.resetAt) {
		rl.visitors[key] = &visitorWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if v.count >= rl.max {
		return false
	}
	v.count++
	return true
}

func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(429, models.ErrorResponse{
				Success: false,
				Message: "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
