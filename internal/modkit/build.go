package modkit

import (
	"net/http"

	"inputdash/internal/modkit/httpkit"
	str "inputdash/internal/platform/strings"

	"github.com/robfig/cron/v3"
)

// Option overrides what a module constructor would otherwise default
type Option func(*Built)

// WithName renames the module in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module somewhere other than its default path
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per module middleware; earlier ones run first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithRegister adds endpoints after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}

// WithScheduler hands the process cron to a module that runs periodic jobs
func WithScheduler(s *cron.Cron) Option { return func(b *Built) { b.Scheduler = s } }

// Built is what a module constructor reads back after applying options
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(httpkit.Router)

	// Scheduler is nil when the process runs no periodic jobs
	Scheduler *cron.Cron
}

// Build starts from the module's own name and prefix and applies opts in order.
// Mw is always a fresh slice so callers can append without aliasing.
func Build(name, prefix string, opts ...Option) Built {
	b := Built{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	b.Name = str.MustString(b.Name, "module name")
	b.Prefix = str.MustPrefix(b.Prefix)
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Use appends middleware after Build, for ones the module derives from its config
func (b *Built) Use(mw ...func(http.Handler) http.Handler) { b.Mw = append(b.Mw, mw...) }

// Mount registers routes under the prefix behind the module middleware,
// followed by any WithRegister extras
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(sub httpkit.Router) {
		routes(sub)
		if b.Register != nil {
			b.Register(sub)
		}
	})
}
