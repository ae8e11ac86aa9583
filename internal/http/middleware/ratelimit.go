package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter applies a fixed per-minute request budget per client IP.
type RateLimiter struct {
	rpm int

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	start time.Time
	count int
}

// pruneThreshold bounds the windows map: once this many clients are
// tracked, expired windows are swept before admitting a new one.
const pruneThreshold = 1024

// NewRateLimiter creates a limiter; rpm <= 0 disables limiting.
func NewRateLimiter(rpm int) *RateLimiter {
	return &RateLimiter{rpm: rpm, windows: make(map[string]*window)}
}

// Handler returns the gin middleware enforcing the budget.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rpm <= 0 {
			c.Next()
			return
		}
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= time.Minute {
		if !ok && len(l.windows) >= pruneThreshold {
			l.prune(now)
		}
		l.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= l.rpm {
		return false
	}
	w.count++
	return true
}

// prune drops windows that have already expired. Caller holds the lock.
func (l *RateLimiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= time.Minute {
			delete(l.windows, key)
		}
	}
}
