package middleware

import (
	"net/http"
	"time"

	"github.com/divyanshus2404/Unimarket/internal/platform/logger"
	"github.com/divyanshus2404/Unimarket/internal/platform/metrics"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestLogger logs each request with its status and duration, and records
// latency and error metrics.
func RequestLogger(log *logger.Logger, mm *metrics.MetricsManager) func(http.Handler) http.Handler {
	requestLog := log.Named("HTTP")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := r.Method + " " + r.URL.Path
			requestLog.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", elapsed),
				zap.String("remote_addr", r.RemoteAddr))

			if mm != nil {
				mm.APILatency.WithLabelValues(route).Observe(elapsed.Seconds())
				if ww.Status() >= 400 {
					mm.APIErrorsTotal.WithLabelValues(route, http.StatusText(ww.Status())).Inc()
				}
			}
		})
	}
}
