package rest

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/muhammadchandra19/hodlinfo/internal/metrics"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
	"github.com/muhammadchandra19/hodlinfo/pkg/util"
)

// RequestContext stores the request id and client ip in the request context
// and echoes the request id back in the response.
func RequestContext(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get(util.RequestIDHeader))
		ctx = util.WithClientIP(ctx, clientIP(r))

		w.Header().Set(util.RequestIDHeader, util.GetRequestID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// AccessLog logs every request and records its metrics by route pattern.
func AccessLog(log logger.Interface, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveHTTP(r.Method, route, status, duration)

			log.InfoContext(r.Context(), "HTTP request",
				logger.Field{Key: "method", Value: r.Method},
				logger.Field{Key: "path", Value: r.URL.Path},
				logger.Field{Key: "status", Value: status},
				logger.Field{Key: "bytes", Value: ww.BytesWritten()},
				logger.Field{Key: "duration", Value: duration.String()},
				logger.Field{Key: "client_ip", Value: util.GetClientIP(r.Context())},
			)
		}

		return http.HandlerFunc(fn)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
