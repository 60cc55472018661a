package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. Entries idle past
// maxIdle are evicted so the map cannot grow without bound on a public
// endpoint.
type ipRateLimiter struct {
	limiters map[string]*ipLimiterEntry
	mu       sync.Mutex
	r        rate.Limit
	burst    int
	maxIdle  time.Duration
}

type ipLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(r rate.Limit, burst int, maxIdle time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*ipLimiterEntry),
		r:        r,
		burst:    burst,
		maxIdle:  maxIdle,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiterEntry{limiter: rate.NewLimiter(l.r, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// evictStale drops entries not seen within maxIdle. An evicted IP simply gets
// a fresh full bucket on its next request.
func (l *ipRateLimiter) evictStale(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.maxIdle {
			delete(l.limiters, ip)
		}
	}
}

func (l *ipRateLimiter) cleanup(interval time.Duration) {
	for {
		time.Sleep(interval)
		l.evictStale(time.Now())
	}
}

// NewStrictRateLimiter throttles credential endpoints: 5 attempts per minute
// per client IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := newIPRateLimiter(rate.Every(time.Minute/5), 5, 30*time.Minute)
	go limiter.cleanup(10 * time.Minute)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
