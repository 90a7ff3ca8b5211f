package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig tunes the per-client token buckets. RequestsPerSecond is
// the sustained refill rate; BurstSize caps how far a bucket can fill.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

type bucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
	cfg    RateLimitConfig
}

// take refills the bucket for the elapsed time, then spends one token if
// available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.cfg.RequestsPerSecond
	if max := float64(b.cfg.BurstSize); b.tokens > max {
		b.tokens = max
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// retryAfter estimates whole seconds until a token becomes available.
func (b *bucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cfg.RequestsPerSecond <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.cfg.RequestsPerSecond) + 1
}

// RateLimit returns a token-bucket limiter keyed by client IP. Buckets are
// created lazily and never evicted; acceptable at clinic scale.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)
	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	bucketFor := func(ip string) *bucket {
		mu.Lock()
		defer mu.Unlock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{tokens: float64(cfg.BurstSize), last: time.Now(), cfg: cfg}
			buckets[ip] = b
		}
		return b
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			b := bucketFor(c.RealIP())
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			if !b.take() {
				h.Set("X-RateLimit-Remaining", "0")
				h.Set("Retry-After", strconv.Itoa(b.retryAfter()))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
