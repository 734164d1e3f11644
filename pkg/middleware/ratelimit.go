package middleware

import (
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"bilemo-api/pkg/utils"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	visitors *xsync.MapOf[string, *visitor]
	rps      rate.Limit
	burst    int
	log      *zap.Logger
	done     chan struct{}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func NewIPRateLimiter(perMinute int, logger *zap.Logger) *IPRateLimiter {
	burst := perMinute / 10
	if burst < 5 {
		burst = 5
	}

	l := &IPRateLimiter{
		visitors: xsync.NewMapOf[string, *visitor](),
		rps:      rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		log:      logger,
		done:     make(chan struct{}),
	}
	go l.cleanupVisitors()
	return l
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	v, _ := l.visitors.LoadOrCompute(ip, func() *visitor {
		return &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
	})
	v.lastSeen.Store(time.Now().UnixNano())
	return v.limiter
}

func (l *IPRateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-5 * time.Minute).UnixNano()
			l.visitors.Range(func(ip string, v *visitor) bool {
				if v.lastSeen.Load() < cutoff {
					l.visitors.Delete(ip)
				}
				return true
			})
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *IPRateLimiter) Stop() {
	close(l.done)
}

func (l *IPRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.getLimiter(ip).Allow() {
			l.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", "60")
			utils.ResponseTooManyRequests(w, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}
