package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"Forumul/internal/api/handlers"
)

// defaultMaxClients bounds the limiter table; the least recently seen client is evicted first
const defaultMaxClients = 10000

// RateLimiter is a per-client token bucket keyed by client IP
type RateLimiter struct {
	clients *lru.Cache[string, *rate.Limiter]
	logger  *slog.Logger
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

// NewRateLimiter creates a new rate limiter.
// requestsPerMinute is the sustained rate, burst the bucket size.
func NewRateLimiter(requestsPerMinute, burst int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}

	clients, err := lru.New[string, *rate.Limiter](defaultMaxClients)
	if err != nil {
		// only returned for a non-positive size
		logger.Error("failed to create rate limiter cache, using minimal cache", "error", err)
		clients, _ = lru.New[string, *rate.Limiter](1)
	}

	return &RateLimiter{
		clients: clients,
		logger:  logger,
		limit:   rate.Limit(float64(requestsPerMinute) / 60),
		burst:   burst,
	}
}

// Middleware returns a rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := getClientIP(r)

		if !rl.limiter(clientID).Allow() {
			rl.logger.Debug("rate limit exceeded", "client", clientID, "path", r.URL.Path)
			handlers.WriteError(w, http.StatusTooManyRequests, "RateLimitExceeded",
				"Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiter returns the bucket for a client, creating it on first sight
func (rl *RateLimiter) limiter(clientID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.clients.Get(clientID); ok {
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients.Add(clientID, l)
	return l
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	// Behind a proxy the first X-Forwarded-For entry is the original client
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
