package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "inputdash/internal/platform/errors"
	pnet "inputdash/internal/platform/net"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v; body=%s", err, rec.Body.String())
	}
	return env
}

func TestHandle_OK(t *testing.T) {
	t.Parallel()
	h := Handle(func(*stdhttp.Request) Response { return OK(map[string]int{"total": 7}) })

	req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type %q", ct)
	}
	env := decode(t, rec)
	if env.RequestID != "rid-1" || env.Status != "OK" || env.Data == nil {
		t.Fatalf("envelope %+v", env)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err    error
		status int
		code   perr.ErrorCode
	}{
		{perr.Timeoutf("Query has timed out."), stdhttp.StatusGatewayTimeout, perr.ErrorCodeTimeout},
		{perr.Searchf("bad index"), stdhttp.StatusBadGateway, perr.ErrorCodeSearch},
		{perr.WithField(perr.Newf(perr.ErrorCodeValidation, "bad"), "page"), stdhttp.StatusBadRequest, perr.ErrorCodeValidation},
		{errors.New("plain"), stdhttp.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, tc := range cases {
		h := Handle(func(*stdhttp.Request) Response { return Error(tc.err) })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
		if rec.Code != tc.status {
			t.Fatalf("%v: status %d want %d", tc.err, rec.Code, tc.status)
		}
		env := decode(t, rec)
		if env.Code != tc.code || env.Error == "" {
			t.Fatalf("%v: envelope %+v", tc.err, env)
		}
	}
}

func TestHandle_HeadersAndDefaultStatus(t *testing.T) {
	t.Parallel()
	h := Handle(func(*stdhttp.Request) Response {
		return Response{Body: "x", Header: stdhttp.Header{"X-Cache": {"HIT"}}}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rec.Code != stdhttp.StatusOK || rec.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("status %d header %q", rec.Code, rec.Header().Get("X-Cache"))
	}
}
