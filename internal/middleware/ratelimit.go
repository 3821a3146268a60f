package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/terravista/estate-core/internal/pkg/response"
	"golang.org/x/time/rate"
)

const limiterMaxAge = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. It exists to slow
// credential guessing against the login endpoint, so the buckets are small
// and the set of keys stays tiny.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiterEntry
	rps      rate.Limit
	burst    int
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows roughly rps requests per second per IP with the
// given burst.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether the key may proceed, and prunes entries that have
// not been seen for a while.
func (l *IPRateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	entry, ok := l.limiters[key]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	for k, e := range l.limiters {
		if now.Sub(e.lastSeen) > limiterMaxAge {
			delete(l.limiters, k)
		}
	}
	l.mu.Unlock()

	return entry.limiter.Allow()
}

// RateLimit returns a middleware enforcing the per-IP limit.
func RateLimit(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}
		if !l.Allow(ip) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
