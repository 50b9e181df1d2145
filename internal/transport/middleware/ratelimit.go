package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/carbonaegis/aegis-backend/internal/config"
)

// RateLimiter applies token bucket limiting keyed by client IP and limit
// class. Classes keep budgets independent: requests counted against the
// factor lookup budget do not consume the general API budget. Idle clients
// have their buckets evicted in the background; call Stop on shutdown.
type RateLimiter struct {
	buckets sync.Map // map[string]*bucket
	idleTTL time.Duration
	stop    chan struct{}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	burst    float64
	perSec   float64
	lastSeen time.Time
}

// NewRateLimiter creates a limiter with the eviction parameters from cfg.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{idleTTL: cfg.IdleTTL, stop: make(chan struct{})}
	go rl.evictIdle(cfg.CleanupInterval)
	return rl
}

// Stop terminates the background eviction goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware enforcing a sustained perMinute rate per client,
// allowing bursts of up to burst requests. A burst below one falls back to
// the full per-minute budget, which behaves like a plain per-minute window.
func (rl *RateLimiter) Limit(class string, perMinute, burst int) Middleware {
	if burst < 1 {
		burst = perMinute
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.bucketFor(class+"|"+clientIP(r), perMinute, burst)
			if !b.take() {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter(perMinute)))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucketFor(key string, perMinute, burst int) *bucket {
	if val, ok := rl.buckets.Load(key); ok {
		return val.(*bucket)
	}
	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:   float64(burst),
		burst:    float64(burst),
		perSec:   float64(perMinute) / 60.0,
		lastSeen: time.Now(),
	})
	return val.(*bucket)
}

func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = math.Min(b.burst, b.tokens+now.Sub(b.lastSeen).Seconds()*b.perSec)
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// retryAfter is the wait in whole seconds until one token refills.
func retryAfter(perMinute int) int {
	secs := int(math.Ceil(60.0 / float64(perMinute)))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// clientIP strips the port from RemoteAddr so one client maps to one bucket
// regardless of the ephemeral source port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) evictIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastSeen)
				b.mu.Unlock()
				if idle > rl.idleTTL {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
