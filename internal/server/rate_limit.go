package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/matsteps/internal/config"
)

const defaultCleanupInterval = 5 * time.Minute

// RateLimiter admits at most rate requests per client IP in each fixed
// window. Idle clients are forgotten by a background sweep.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*window
	rate     int
	window   time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// window is the budget left to one client and when it was opened.
type window struct {
	remaining int
	opened    time.Time
}

// RateLimiterConfig sizes a RateLimiter. Zero values take the defaults.
type RateLimiterConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultRateLimiterConfig allows config.DefaultRateLimit requests per minute.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerMinute: config.DefaultRateLimit,
		CleanupInterval:   defaultCleanupInterval,
	}
}

// NewRateLimiter starts a limiter and its sweep goroutine. Call Stop when done.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = defaults.RequestsPerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	rl := &RateLimiter{
		clients:  make(map[string]*window),
		rate:     cfg.RequestsPerMinute,
		window:   time.Minute,
		cleanup:  cfg.CleanupInterval,
		stopChan: make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Allow spends one request from the budget of clientIP and reports whether
// there was one to spend.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[clientIP]
	if !ok || now.Sub(w.opened) >= rl.window {
		rl.clients[clientIP] = &window{remaining: rl.rate - 1, opened: now}
		return true
	}
	if w.remaining == 0 {
		return false
	}
	w.remaining--
	return true
}

// sweep drops clients whose window closed more than one window ago.
func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopChan:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, w := range rl.clients {
				if now.Sub(w.opened) > 2*rl.window {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopChan) })
}

// retryAfter is the number of seconds a limited client should wait.
func (rl *RateLimiter) retryAfter() string {
	return strconv.Itoa(int(rl.window / time.Second))
}

// RateLimitMiddleware answers 429 with a JSON ErrorResponse once a client
// has used up its window.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl.Allow(getClientIP(r)) {
			next(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", rl.retryAfter())
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error:   http.StatusText(http.StatusTooManyRequests),
			Message: "Rate limit exceeded. Please try again later.",
		})
	}
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// the connection address without its port.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return extractFirstIP(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return stripPort(r.RemoteAddr)
}

func extractFirstIP(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// stripPort handles "host:port", "[v6]:port" and bare addresses.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
