package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/radif/mediadrop/internal/logger"
	"github.com/radif/mediadrop/internal/metrics"
	"github.com/radif/mediadrop/internal/response"
)

// idleLimiterTTL is how long an untouched per-IP limiter is kept.
const idleLimiterTTL = 10 * time.Minute

// LoginLimiter throttles login attempts per client IP with a token bucket.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	every    rate.Limit
	burst    int
	now      func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter allows perMinute attempts per IP, with the same burst.
// perMinute <= 0 disables throttling.
func NewLoginLimiter(perMinute int) *LoginLimiter {
	return &LoginLimiter{
		limiters: make(map[string]*ipLimiter),
		every:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		now:      time.Now,
	}
}

// Allow reports whether ip may attempt another login now. Idle entries are
// swept on each call.
func (l *LoginLimiter) Allow(ip string) bool {
	if l.burst <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, v := range l.limiters {
		if now.Sub(v.lastSeen) > idleLimiterTTL {
			delete(l.limiters, k)
		}
	}

	il, ok := l.limiters[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = il
	}
	il.lastSeen = now
	return il.limiter.AllowN(now, 1)
}

// Handler wraps next, answering 429 once the caller's budget is spent.
func (l *LoginLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			metrics.LoginAttempts.WithLabelValues("throttled").Inc()
			logger.Warn().Str("ip", ip).Msg("login throttled")
			if l.every > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(float64(1)/float64(l.every))+1))
			}
			response.TooManyRequests(w, "Too many login attempts")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
