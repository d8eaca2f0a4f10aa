package middleware

import (
	"net/http"
	"time"
)

type httpRecorder interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics records every request by method, mux route pattern and status.
// It must wrap the mux directly (or through middleware that keeps the same
// *http.Request) for the route pattern to be visible.
func Metrics(rec httpRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			rec.ObserveHTTP(r.Method, routeOf(r), sw.status, time.Since(start))
		})
	}
}
