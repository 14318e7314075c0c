package middleware

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"

	perr "inputdash/internal/platform/errors"
	"inputdash/internal/platform/logger"
	pnet "inputdash/internal/platform/net"
)

// RecoverJSON converts panics into a JSON 500 envelope. The stack is logged
// through the request logger, so mount it inside AccessLogZerolog.
// http.ErrAbortHandler is re-raised for net/http to handle.
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, stdhttp.ErrAbortHandler) {
				panic(v)
			}
			// Wrap records the stack while the panicking frames are still on it
			err := perr.Wrap(panicError(v), perr.ErrorCodePanic, "internal error")
			logger.C(r.Context()).Error().Stack().Err(err).Msg("panic recovered")

			reqID := pnet.RequestID(r.Context())
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(err, reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = stdjson.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}

func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
