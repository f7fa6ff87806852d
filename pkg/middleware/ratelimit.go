package middleware

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"shareit/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const minLimiterIdle = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type rateLimiter struct {
	limiters sync.Map
	cfg      utils.RateLimitConfig
	burst    int
	// idle is how long an unused limiter is kept. It is never shorter than a
	// full bucket refill, so eviction cannot hand a caller fresh tokens early.
	idle      time.Duration
	lastSweep atomic.Int64
	now       func() time.Time
}

func newRateLimiter(cfg utils.RateLimitConfig) *rateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	idle := minLimiterIdle
	if refill := time.Duration(float64(burst) / cfg.RPS * float64(time.Second)); refill > idle {
		idle = refill
	}

	return &rateLimiter{cfg: cfg, burst: burst, idle: idle, now: time.Now}
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now()
	l.sweep(now)

	if v, ok := l.limiters.Load(key); ok {
		entry := v.(*limiterEntry)
		entry.lastSeen.Store(now.UnixNano())
		return entry.limiter
	}

	entry := &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.cfg.RPS), l.burst)}
	entry.lastSeen.Store(now.UnixNano())
	actual, loaded := l.limiters.LoadOrStore(key, entry)
	if loaded {
		entry = actual.(*limiterEntry)
		entry.lastSeen.Store(now.UnixNano())
	}
	return entry.limiter
}

// sweep drops limiters unused for longer than idle. It runs at most once per idle period.
func (l *rateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idle) || !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-l.idle).UnixNano()
	l.limiters.Range(func(key, v any) bool {
		if v.(*limiterEntry).lastSeen.Load() < cutoff {
			l.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit throttles callers by client address. UserIDHeader is not
// verified here, so it is not used as a key. A non-positive RPS disables limiting.
func RateLimit(cfg utils.RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := newRateLimiter(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)
			if !limiter.getLimiter(key).Allow() {
				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.String("path", r.URL.Path))
				utils.ResponseTooManyRequests(w, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
