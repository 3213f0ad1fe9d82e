package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimiter is a per-client sliding window. It guards PIN verification,
// where a four-digit PIN would otherwise fall to brute force.
type rateLimiter struct {
	max    int
	window time.Duration

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{max: max, window: window, hits: make(map[string][]time.Time)}
}

// allow records an attempt for key at now and reports whether it fits in the
// window.
func (rl *rateLimiter) allow(key string, now time.Time) bool {
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	// Prune attempts outside the window
	recent := rl.hits[key][:0]
	for _, t := range rl.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.max {
		rl.hits[key] = recent
		return false
	}
	rl.hits[key] = append(recent, now)
	return true
}

// sweep drops clients whose newest attempt is at or before cutoff. Callers
// hold rl.mu.
func (rl *rateLimiter) sweep(cutoff time.Time) {
	for key, ts := range rl.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(rl.hits, key)
		}
	}
}

func (rl *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			apiError(c, http.StatusTooManyRequests, "too many attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
