package ratelimit

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_PerKeyBudget(t *testing.T) {
	l := NewKeyedLimiter(0, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys must not share a bucket")
	assert.Same(t, l.Limiter("a"), l.Limiter("a"))
}

func TestKeyedLimiter_PrunesIdleKeys(t *testing.T) {
	l := NewKeyedLimiter(1, 1)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	for i := 0; i <= cleanupThreshold; i++ {
		l.Limiter(fmt.Sprintf("key-%d", i))
	}
	assert.Equal(t, cleanupThreshold+1, l.Len())

	l.now = func() time.Time { return base.Add(maxIdleAge + time.Minute) }
	l.Limiter("fresh")
	assert.Equal(t, 1, l.Len())
}

func TestMiddleware(t *testing.T) {
	l := NewKeyedLimiter(0, 1)
	h := Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
