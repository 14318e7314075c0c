package http

import (
	"net/http"

	"inputdash/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T from the body before calling fn.
// fn may return a Response to set status or headers itself.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
