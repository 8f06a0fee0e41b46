// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/whitestar/lifeboat/pkg/metrics"
)

// withMetrics wraps a handler to record request count, duration, and error
// class per endpoint.
func withMetrics(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		durationMs := float64(time.Since(start).Microseconds()) / 1000.0
		code := strconv.Itoa(sw.status)

		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, durationMs)

		if sw.status >= http.StatusBadRequest {
			class, severity := classify(sw.status)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, class)
			metrics.RecordErrorByType(class, severity)
		}
	}
}

// classify buckets an error status for the error metrics. On this API a 4xx
// is a rejected input, never a fault; only 5xx means the service itself
// failed.
func classify(status int) (class, severity string) {
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error", "error"
	case status == http.StatusNotFound:
		return "not_found", "warning"
	default:
		return "rejected_input", "warning"
	}
}

// statusWriter captures the status code written by a handler. Handlers that
// never call WriteHeader implicitly answer 200.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}
