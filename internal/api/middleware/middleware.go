package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader is echoed back so callers can correlate logs.
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs each request with a request ID.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// SecurityHeaders adds standard browser protection headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter tracks a rate limiter per client IP and evicts stale entries
// so the map does not grow without bound.
type ipLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rate    rate.Limit
	burst   int
	ttl     time.Duration
}

func newIPLimiter(r rate.Limit, burst int, ttl time.Duration) *ipLimiter {
	l := &ipLimiter{
		entries: make(map[string]*limiterEntry),
		rate:    r,
		burst:   burst,
		ttl:     ttl,
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for range ticker.C {
			l.mu.Lock()
			now := time.Now()
			for ip, e := range l.entries {
				if now.Sub(e.lastSeen) > l.ttl {
					delete(l.entries, ip)
				}
			}
			l.mu.Unlock()
		}
	}()

	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// RateLimit rejects clients exceeding 100 requests per minute with a
// burst of 50.
func RateLimit() gin.HandlerFunc {
	limiter := newIPLimiter(rate.Every(time.Minute/100), 50, 5*time.Minute)

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"result":  false,
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
