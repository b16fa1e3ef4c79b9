package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-scheduler/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serveFrom(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate-schedule", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterMiddlewareMemory(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Backend: BackendMemory, RPS: 1, Burst: 2}
	rl := NewRateLimiterMiddleware(cfg, nil, testLogger())
	defer rl.Close()

	require.True(t, rl.IsEnabled())
	handler := rl.Middleware(okHandler)

	t.Run("allows the burst then blocks", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:12345").Code)
		assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:12345").Code)

		rec := serveFrom(handler, "127.0.0.1:12345")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))

		var resp rateLimitedBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Rate limit exceeded", resp.Msg)
	})

	t.Run("limits each client separately", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serveFrom(handler, "10.1.1.1:1000").Code)
	})
}

func TestRateLimiterMiddlewareDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.RateLimitConfig
	}{
		{"disabled by config", config.RateLimitConfig{Enabled: false, RPS: 1, Burst: 1}},
		{"non-positive rps", config.RateLimitConfig{Enabled: true, RPS: 0, Burst: 1}},
		{"non-positive burst", config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiterMiddleware(tt.cfg, nil, testLogger())
			defer rl.Close()

			assert.False(t, rl.IsEnabled())
			handler := rl.Middleware(okHandler)
			for i := 0; i < 5; i++ {
				assert.Equal(t, http.StatusOK, serveFrom(handler, "127.0.0.1:1").Code)
			}
		})
	}
}

func TestRateLimiterMiddlewareRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := config.RateLimitConfig{Enabled: true, Backend: BackendRedis, RPS: 2, Burst: 2}
	rl := NewRateLimiterMiddleware(cfg, client, testLogger())
	require.IsType(t, &redisLimiter{}, rl.limiter)
	handler := rl.Middleware(okHandler)

	assert.Equal(t, http.StatusOK, serveFrom(handler, "192.0.2.7:5000").Code)
	assert.Equal(t, http.StatusOK, serveFrom(handler, "192.0.2.7:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, serveFrom(handler, "192.0.2.7:5000").Code)

	key := redisKeyPrefix + "192.0.2.7"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Second, mr.TTL(key))

	t.Run("window expiry resets the count", func(t *testing.T) {
		mr.FastForward(2 * time.Second)
		assert.Equal(t, http.StatusOK, serveFrom(handler, "192.0.2.7:5000").Code)
	})

	t.Run("fails open when redis is unreachable", func(t *testing.T) {
		mr.Close()
		assert.Equal(t, http.StatusOK, serveFrom(handler, "192.0.2.8:5000").Code)
	})
}

func TestRateLimiterMiddlewareRedisWithoutClient(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Backend: BackendRedis, RPS: 1, Burst: 1}
	rl := NewRateLimiterMiddleware(cfg, nil, testLogger())
	defer rl.Close()

	assert.IsType(t, &memoryLimiter{}, rl.limiter)
}

func TestWindowLimit(t *testing.T) {
	assert.Equal(t, int64(20), windowLimit(config.RateLimitConfig{RPS: 10, Burst: 20}))
	assert.Equal(t, int64(3), windowLimit(config.RateLimitConfig{RPS: 2.5, Burst: 1}))
}

func TestClientKey(t *testing.T) {
	rl := &RateLimiterMiddleware{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	assert.Equal(t, "127.0.0.1", rl.clientKey(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.1")
	assert.Equal(t, "127.0.0.1", rl.clientKey(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.9.8.7"
	assert.Equal(t, "10.9.8.7", rl.clientKey(req))
}

func TestRateLimiterIgnoresRotatingForwardedFor(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Backend: BackendMemory, RPS: 0.001, Burst: 1}
	rl := NewRateLimiterMiddleware(cfg, nil, testLogger())
	defer rl.Close()
	handler := rl.Middleware(okHandler)

	codes := make([]int, 0, 3)
	for _, forwarded := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/generate-schedule", nil)
		req.RemoteAddr = "203.0.113.5:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestMemoryLimiterSweep(t *testing.T) {
	m := newMemoryLimiter(0.001, 1)
	defer m.close()

	m.get("idle")
	busy := m.get("busy")
	require.True(t, busy.Allow())

	m.sweepOnce()

	_, idleKept := m.limiters.Load("idle")
	_, busyKept := m.limiters.Load("busy")
	assert.False(t, idleKept)
	assert.True(t, busyKept)
}
