package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "inputdash/internal/platform/errors"
	pnet "inputdash/internal/platform/net"
)

func TestSuccess(t *testing.T) {
	t.Parallel()
	w := pnet.Success(0, map[string]int{"total": 3}, "rid")
	if w.StatusCode != http.StatusOK || w.Status != "OK" || w.RequestID != "rid" || w.Data == nil {
		t.Fatalf("envelope = %+v", w)
	}
	if w := pnet.Success(http.StatusAccepted, nil, ""); w.Status != "Accepted" {
		t.Fatalf("status text = %q", w.Status)
	}
}

func TestError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		msg    string
		field  string
	}{
		{"nil is ok", nil, http.StatusOK, 0, "", ""},
		{"timeout", perr.Timeoutf("Query has timed out."), http.StatusGatewayTimeout, perr.ErrorCodeTimeout, "Query has timed out.", ""},
		{"search", perr.Searchf("index missing"), http.StatusBadGateway, perr.ErrorCodeSearch, "index missing", ""},
		{"rate", perr.TooManyRequestsf("slow down"), http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests, "slow down", ""},
		{"field", perr.WithField(perr.InvalidArgf("bad date"), "date_start"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, "bad date", "date_start"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown, "boom", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status, w := pnet.Error(tc.err, "rid")
			if status != tc.status || w.StatusCode != tc.status {
				t.Fatalf("status got %d/%d want %d", status, w.StatusCode, tc.status)
			}
			if w.Code != tc.code || w.Error != tc.msg || w.Field != tc.field || w.RequestID != "rid" {
				t.Fatalf("wire got %+v", w)
			}
		})
	}
}
