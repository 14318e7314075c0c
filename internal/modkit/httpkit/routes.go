package httpkit

import (
	"net/http"
	"strings"
)

// APIVersion is the path segment every module is mounted under
const APIVersion = "v1"

// MountAPIV1 mounts the versioned API root with the shared middleware stack
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+APIVersion, mw, mount)
}

// MountUnder gives mount a subrouter at prefix with mw applied to it alone
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(prefix, "/"), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// PostJSON registers a POST whose body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// Get registers a GET with no body; the result is wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
