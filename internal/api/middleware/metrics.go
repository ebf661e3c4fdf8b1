package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector feeds the request and error counters surfaced by the
// metrics endpoint. The counters live on the App; the collector only
// ever increments them.
type MetricsCollector struct {
	requests *atomic.Int64
	errors   *atomic.Int64
}

func NewMetricsCollector(requests, errors *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{requests: requests, errors: errors}
}

// Middleware counts every request, and every response carrying a 4xx or
// 5xx status as an error.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requests.Add(1)

		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		if rec.status >= http.StatusBadRequest {
			mc.errors.Add(1)
		}
	})
}
