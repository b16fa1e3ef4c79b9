package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"loan-scheduler/internal/config"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	limiterIdleSweep = 10 * time.Minute
)

// rateLimitedBody matches the {msg} error body the handlers write.
type rateLimitedBody struct {
	Msg string `json:"msg"`
}

// limiter decides whether the client identified by key may make another request.
type limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type RateLimiterMiddleware struct {
	limiter    limiter
	cfg        config.RateLimitConfig
	logger     *slog.Logger
	retryAfter time.Duration
	stop       func()
}

func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		cfg:        cfg,
		logger:     logger.With("component", "RateLimiter"),
		retryAfter: time.Second,
		stop:       func() {},
	}

	if !cfg.Enabled {
		rl.logger.Info("Rate limiting is disabled via configuration.")
		return rl
	}
	if cfg.RPS <= 0 || cfg.Burst <= 0 {
		rl.logger.Warn("Rate limiting enabled with non-positive rps or burst; disabling.", "rps", cfg.RPS, "burst", cfg.Burst)
		rl.cfg.Enabled = false
		return rl
	}

	switch {
	case cfg.Backend == BackendRedis && redisClient != nil:
		rl.limiter = newRedisLimiter(redisClient, windowLimit(cfg), time.Second, rl.logger)
	case cfg.Backend == BackendRedis:
		rl.logger.Warn("Redis rate limiting requested but no Redis client provided; using in-memory limiter.")
		fallthrough
	default:
		mem := newMemoryLimiter(cfg.RPS, cfg.Burst)
		go mem.sweep(limiterIdleSweep)
		rl.limiter = mem
		rl.stop = mem.close
	}

	rl.logger.Info("Rate limiter middleware configured", "backend", cfg.Backend, "rps", cfg.RPS, "burst", cfg.Burst)
	return rl
}

// windowLimit is the number of requests a fixed one second window admits.
func windowLimit(cfg config.RateLimitConfig) int64 {
	return int64(math.Max(math.Ceil(cfg.RPS), float64(cfg.Burst)))
}

func (rl *RateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.limiter != nil
}

// Close stops background cleanup of the in-memory backend.
func (rl *RateLimiterMiddleware) Close() {
	rl.stop()
}

// clientKey identifies the caller by RemoteAddr only. middleware.RealIP runs earlier in the chain
// and has already applied any proxy headers, so X-Forwarded-For is not consulted again here.
func (rl *RateLimiterMiddleware) clientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientKey(r)

		allowed, err := rl.limiter.Allow(r.Context(), ip)
		if err != nil {
			rl.logger.ErrorContext(r.Context(), "Rate limit check failed; allowing request", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			httpRateLimitedTotal.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.retryAfter.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(rateLimitedBody{Msg: "Rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

type memoryLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
}

func newMemoryLimiter(rps float64, burst int) *memoryLimiter {
	return &memoryLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
		done:  make(chan struct{}),
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return m.get(key).Allow(), nil
}

func (m *memoryLimiter) get(key string) *rate.Limiter {
	if l, ok := m.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := m.limiters.LoadOrStore(key, rate.NewLimiter(m.rps, m.burst))
	return l.(*rate.Limiter)
}

// sweep drops limiters whose bucket has refilled, i.e. clients that went quiet.
func (m *memoryLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweepOnce()
		}
	}
}

func (m *memoryLimiter) sweepOnce() {
	m.limiters.Range(func(key, value interface{}) bool {
		if value.(*rate.Limiter).Tokens() >= float64(m.burst) {
			m.limiters.Delete(key)
		}
		return true
	})
}

func (m *memoryLimiter) close() {
	m.once.Do(func() { close(m.done) })
}
