package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/checksinmyhead/api/internal/ratelimiter"
)

// RateLimit rejects requests with 429 once the shared limiter is exhausted.
// A nil limiter disables the check.
func RateLimit(l *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
