package middlewares

import (
	"fmt"
	"net/http"
	"time"
)

// Cache marks responses as cacheable for maxAge. All statistics endpoints
// are pure reads, so letting proxies serve slightly stale aggregates is safe.
func Cache(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("stale-while-revalidate, max-age=%d", int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
