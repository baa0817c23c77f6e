package server

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"golang.org/x/time/rate"
)

const (
	clientCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client. Each bucket holds up to
// requests tokens and refills at requests per window.
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	window      time.Duration
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

// NewRateLimiter starts a limiter allowing requests per window for each client.
// Call Stop to end its cleanup goroutine.
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = constants.DefaultRateLimitWindow
	}
	if requests < 0 {
		requests = 0
	}
	rl := &RateLimiter{
		limit:       rate.Limit(float64(requests) / window.Seconds()),
		burst:       requests,
		window:      window,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
		now:         time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, cl := range r.clients {
		if now.Sub(cl.lastSeen) > clientCleanupThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCleanup)
	})
}

// Allow consumes a token for client and reports whether the request may proceed.
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cl, exists := r.clients[client]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Middleware rejects requests from clients that have exhausted their bucket.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		client, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			client = req.RemoteAddr
		}

		if !r.Allow(client) {
			w.Header().Set("Retry-After", retryAfterSeconds(r.window))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func retryAfterSeconds(window time.Duration) string {
	seconds := int(window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
