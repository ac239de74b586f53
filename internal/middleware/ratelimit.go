package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
	"github.com/noah-isme/scholarsync-api/pkg/response"
)

type window struct {
	count     int
	windowEnd time.Time
}

// RateLimiter counts requests per key in fixed windows. Expired windows are
// evicted by the cache janitor.
type RateLimiter struct {
	mu      sync.Mutex
	windows *cache.Cache
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows limit requests per key every window. A non-positive limit disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		windows: cache.New(window, 5*window),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether key may proceed and, if not, how long until its window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil || l.limit <= 0 {
		return true, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if raw, found := l.windows.Get(key); found {
		win := raw.(*window)
		if now.Before(win.windowEnd) {
			if win.count < l.limit {
				win.count++
				return true, 0
			}
			return false, win.windowEnd.Sub(now)
		}
	}
	l.windows.Set(key, &window{count: 1, windowEnd: now.Add(l.window)}, l.window)
	return true, 0
}

// RateLimit throttles a route per client IP. Session subjects are minted on
// demand, so they never select the bucket.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := limiter.Allow("ip:" + c.ClientIP())
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			response.Error(c, appErrors.Clone(appErrors.ErrRateLimited, "too many requests, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}
