package middleware

import (
	"net/http"
	"sync"

	"instructly_go_backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// PerUserRateLimiter keeps one token bucket per user. Limiters are never
// expired; the user population is small enough that the map stays bounded.
type PerUserRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewPerUserRateLimiter allows requestsPerMinute sustained requests per user
// with a burst of the same size.
func NewPerUserRateLimiter(requestsPerMinute int) *PerUserRateLimiter {
	return &PerUserRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    requestsPerMinute,
	}
}

func (rl *PerUserRateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Middleware rejects requests over the per-user budget with 429. It runs
// after the auth middleware so the user is already resolved; unauthenticated
// requests fall back to the client IP.
func (rl *PerUserRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if u, exists := c.Get("user"); exists {
			if user, ok := u.(*models.User); ok {
				key = user.ID.String()
			}
		}

		if !rl.limiterFor(key).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
