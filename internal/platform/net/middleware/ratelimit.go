package middleware

import (
	stdjson "encoding/json"
	"net"
	stdhttp "net/http"
	"strconv"
	"sync"
	"time"

	perr "inputdash/internal/platform/errors"
	pnet "inputdash/internal/platform/net"

	"golang.org/x/time/rate"
)

// RateLimitOptions configures per client token buckets
type RateLimitOptions struct {
	// PerMinute is the sustained rate; 0 disables limiting
	PerMinute int
	Burst     int
	// IdleTTL drops buckets not seen for this long
	IdleTTL time.Duration
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

type limiter struct {
	mu   sync.Mutex
	opt  RateLimitOptions
	byIP map[string]*visitor
	now  func() time.Time
	last time.Time
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.last) > l.opt.IdleTTL {
		for k, v := range l.byIP {
			if now.Sub(v.seen) > l.opt.IdleTTL {
				delete(l.byIP, k)
			}
		}
		l.last = now
	}

	v, ok := l.byIP[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(rate.Limit(float64(l.opt.PerMinute)/60), l.opt.Burst)}
		l.byIP[ip] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// RateLimit rejects clients exceeding their bucket with a 429 envelope
// Keyed on RemoteAddr, so mount after RealIP
func RateLimit(opt RateLimitOptions) func(stdhttp.Handler) stdhttp.Handler {
	if opt.PerMinute <= 0 {
		return func(next stdhttp.Handler) stdhttp.Handler { return next }
	}
	if opt.Burst <= 0 {
		opt.Burst = opt.PerMinute
	}
	if opt.IdleTTL <= 0 {
		opt.IdleTTL = 10 * time.Minute
	}
	l := &limiter{opt: opt, byIP: map[string]*visitor{}, now: time.Now}
	retry := strconv.Itoa(max(1, 60/opt.PerMinute))

	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if l.allow(clientIP(r)) {
				next.ServeHTTP(w, r)
				return
			}
			status, body := pnet.Error(perr.TooManyRequestsf("rate limit exceeded"), pnet.RequestID(r.Context()))
			w.Header().Set("Retry-After", retry)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		})
	}
}

func clientIP(r *stdhttp.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
