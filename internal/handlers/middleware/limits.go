// internal/handlers/middleware/limits.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused per-client limiter is kept
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

// clientLimiters hands out one token bucket per client address
type clientLimiters struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*clientLimiter
	swept   time.Time
}

func (c *clientLimiters) get(ip string, now time.Time) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.swept) > idleLimiterTTL {
		for key, cl := range c.clients {
			if now.Sub(cl.lastSeen) > idleLimiterTTL {
				delete(c.clients, key)
			}
		}
		c.swept = now
	}

	cl, ok := c.clients[ip]
	if !ok {
		cl = &clientLimiter{Limiter: rate.NewLimiter(c.every, c.burst)}
		c.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.Limiter
}

// RateLimit allows each client IP up to requests per window, answering 429
// with Retry-After beyond that
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	limiters := &clientLimiters{
		every:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		clients: make(map[string]*clientLimiter),
		swept:   time.Now(),
	}
	retryAfter := strconv.Itoa(max(1, int(window/time.Duration(requests)/time.Second)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clientIP(r), time.Now()).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout cancels the request context after d. A handler that has not
// written by then yields 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"Request timeout"}`)
	}
}
