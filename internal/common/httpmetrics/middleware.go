package httpmetrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/accounthub/user-service/internal/observability/metrics"
)

type Collector struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		method := r.Method
		path := NormalizePath(r.URL.Path)

		metrics.HTTPRequestsTotal.WithLabelValues(method, path).Inc()
		metrics.HTTPRequestsInFlight.Inc()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		statusClass := fmt.Sprintf("%dxx", rec.status/100)

		metrics.HTTPRequestsInFlight.Dec()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(method, path, statusClass).Observe(elapsed.Seconds())

		if rec.status >= http.StatusBadRequest {
			metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(rec.status), path, method).Inc()
		}
	})
}
