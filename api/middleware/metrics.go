package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solvitek/quoteline-backend/pkg/metrics"
)

// Metrics records request counts and latencies per routed pattern. It must
// sit inside the chi router so RoutePattern resolves to the template, not
// the raw path.
func Metrics(hm *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			hm.Observe(r.Method, route, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}
