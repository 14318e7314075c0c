// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"inputdash/internal/platform/logger"
	pnet "inputdash/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or over this at warn; 0 disables
	Slow time.Duration
	// Log replaces the root logger as the request logger when set
	Log *logger.Logger
}

// AccessLogZerolog puts a request scoped logger on the context and logs one
// line per request once the handler returns. 5xx logs at error, slow at warn.
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if opt.Log != nil {
				ctx = logger.Into(ctx, *opt.Log)
			}
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx))
			ctx, cache := pnet.WithCacheStatus(ctx)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			lvl := zerolog.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case opt.Slow > 0 && elapsed >= opt.Slow:
				lvl = zerolog.WarnLevel
			}
			logger.C(ctx).WithLevel(lvl).
				Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", ww.BytesWritten()).
				Bool("cache_hit", cache.Hit).
				Msg("request done")
		})
	}
}
