package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Limiter counts requests per key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
}

// RateLimitMiddleware throttles requests per client address
type RateLimitMiddleware struct {
	limiter Limiter
	denied  http.Handler
}

// NewRateLimitMiddleware creates a new rate limit middleware. denied renders
// the response for throttled requests; nil writes a plain 429.
func NewRateLimitMiddleware(limiter Limiter, denied http.Handler) *RateLimitMiddleware {
	if denied == nil {
		denied = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		})
	}
	return &RateLimitMiddleware{limiter: limiter, denied: denied}
}

// Limit applies rate limiting based on the client address
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		allowed, remaining, resetTime, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			// If rate limiter fails, allow the request but log the error
			log.Error().Err(err).Str("client", key).Msg("Rate limiter failed")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			log.Warn().Str("client", key).Str("path", r.URL.Path).Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter(resetTime)))
			m.denied.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. The router only rewrites
// RemoteAddr from proxy headers when server.trust_proxy is set.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(reset time.Time) int {
	seconds := int(time.Until(reset).Seconds()) + 1
	if seconds < 1 {
		return 1
	}
	return seconds
}
