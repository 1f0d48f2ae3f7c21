// Package middleware provides HTTP middleware for the kit tracker.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Client table bounds. The tracker serves a handful of shop-floor
// workstations, so the table stays small; the cap only guards against
// address-spoofing filling the map.
const (
	maxClients    = 50_000
	sweepInterval = 10 * time.Minute
	idleCutoff    = 30 * time.Minute
)

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    float64
	burst   float64
}

// client is one IP's bucket. Tokens refill continuously at the limiter's
// rate, fractional tokens included, up to the burst cap.
type client struct {
	tokens  float64
	updated time.Time
}

// NewRateLimiter creates a RateLimiter with the given requests per second
// and burst size. A background sweeper evicts idle clients until ctx is
// cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}
	go rl.sweep(ctx)

	return rl
}

// take refills the client's bucket for the elapsed time and consumes one
// token if available. Caller holds rl.mu.
func (rl *RateLimiter) take(cl *client, now time.Time) bool {
	cl.tokens += now.Sub(cl.updated).Seconds() * rl.rate
	if cl.tokens > rl.burst {
		cl.tokens = rl.burst
	}

	cl.updated = now

	if cl.tokens < 1 {
		return false
	}

	cl.tokens--

	return true
}

// sweep periodically drops clients that have been idle past the cutoff.
func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, cl := range rl.clients {
				if now.Sub(cl.updated) > idleCutoff {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that rate limits per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() cannot be spoofed via X-Forwarded-For here:
		// the router disables proxy header trust with SetTrustedProxies(nil).
		ip := c.ClientIP()
		now := time.Now()

		rl.mu.Lock()
		cl, ok := rl.clients[ip]
		if !ok {
			if len(rl.clients) >= maxClients {
				rl.mu.Unlock()
				respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

				return
			}

			cl = &client{tokens: rl.burst, updated: now}
			rl.clients[ip] = cl
		}

		allowed := rl.take(cl, now)
		rl.mu.Unlock()

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}
