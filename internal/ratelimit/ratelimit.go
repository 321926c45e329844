// Package ratelimit provides a keyed token-bucket limiter and an HTTP
// middleware that limits requests per client IP.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle key is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one limiter per key and prunes idle keys inline.
type KeyedLimiter struct {
	keys map[string]*entry
	mu   sync.Mutex
	r    rate.Limit
	b    int
	now  func() time.Time
}

// NewKeyedLimiter creates a limiter allowing r events per second with burst b per key.
func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		keys: make(map[string]*entry),
		r:    r,
		b:    b,
		now:  time.Now,
	}
}

// Limiter returns the limiter for key.
func (k *KeyedLimiter) Limiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if len(k.keys) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for key, e := range k.keys {
			if e.lastSeen.Before(cutoff) {
				delete(k.keys, key)
			}
		}
	}

	e, ok := k.keys[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.r, k.b)}
		k.keys[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Allow reports whether an event for key may happen now.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.Limiter(key).Allow()
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}

// Middleware rejects requests with 429 once the client IP exceeds its budget.
func Middleware(limiter *KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.Allow(ip) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
