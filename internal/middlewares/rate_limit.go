package middlewares

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit applies a shared token-bucket limit across all requests and
// answers 429 when the bucket is empty.
func RateLimit(every rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(every, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
