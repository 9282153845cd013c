package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit_PerClient(t *testing.T) {
	clock := clockwork.NewFakeClock()
	h := RateLimit(RateLimitConfig{PerSecond: 1, Burst: 2, Clock: clock})(http.HandlerFunc(okHandler))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:5000"), "other clients keep their own bucket")

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:5003"))
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(RateLimitConfig{})(http.HandlerFunc(okHandler))
	for range 10 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiter_ExpiresIdleVisitors(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := newRateLimiter(RateLimitConfig{PerSecond: 1, Burst: 1, Clock: clock})
	assert.True(t, l.allow("a"))
	clock.Advance(rateLimiterExpiry + time.Second)
	assert.True(t, l.allow("b"))
	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.visitors, "a")
	assert.Contains(t, l.visitors, "b")
}
