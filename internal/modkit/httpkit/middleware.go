package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"inputdash/internal/platform/logger"
	"inputdash/internal/platform/net/middleware"
)

// StackOptions tunes the shared API middleware stack
type StackOptions struct {
	Timeout time.Duration
	Slow    time.Duration
	CORS    middleware.CORSOptions
	// Log is the request logger; nil uses the root logger
	Log *logger.Logger
}

// Stack returns the middleware every versioned API router gets, outermost first
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Log: o.Log}),
		middleware.RecoverJSON,
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	}
}

// RateLimit is the per client limiter modules put on their expensive routes
func RateLimit(perMinute, burst int) func(http.Handler) http.Handler {
	return middleware.RateLimit(middleware.RateLimitOptions{PerMinute: perMinute, Burst: burst})
}
