package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrs "github.com/pkg/errors"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeSearch, http.StatusBadGateway},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	t.Parallel()

	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	src := stderrs.New("socket closed")
	wrapped := Wrapf(src, ErrorCodeSearch, "search backend error: %s", "boom")
	if want := "search backend error: boom: socket closed"; wrapped.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", wrapped.Error(), want)
	}
	if !stderrs.Is(wrapped, src) {
		t.Fatalf("Wrapf did not keep the cause")
	}
	type stackTracer interface{ StackTrace() pkgerrs.StackTrace }
	if st, ok := stderrs.Unwrap(wrapped).(stackTracer); !ok || len(st.StackTrace()) == 0 {
		t.Fatalf("Wrapf should record a stack")
	}
	got, ok := As(wrapped)
	if !ok || got.Code() != ErrorCodeSearch || got.Message() != "search backend error: boom" {
		t.Fatalf("As() = %+v, %v", got, ok)
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	base := New(ErrorCodeValidation, "bad page")
	withField := WithField(base, "page")
	withOp := WithOp(withField, "normalize")
	if fe, _ := As(withField); fe.Field() != "page" {
		t.Fatalf("WithField failed")
	}
	if oe, _ := As(withOp); oe.Op() != "normalize" {
		t.Fatalf("WithOp failed")
	}
	if b, _ := As(base); b.Field() != "" || b.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithField(src, "x") != src {
		t.Fatalf("WithField should pass foreign errors through")
	}

	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "socket closed" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	if wf := WireFrom(wrapped); wf.Message != "search backend error: boom" {
		t.Fatalf("WireFrom(ours) leaked the cause: %+v", wf)
	}

	if st := HTTPStatus(fmt.Errorf("ctx: %w", Timeoutf("Query has timed out."))); st != http.StatusGatewayTimeout {
		t.Fatalf("HTTPStatus(timeout) = %d", st)
	}
	if st := HTTPStatus(src); st != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus(foreign) = %d", st)
	}

	sugar := map[ErrorCode]error{
		ErrorCodeInvalidArgument: InvalidArgf("x"),
		ErrorCodeJSON:            JSONErrf("x"),
		ErrorCodePanic:           PanicErrf("x"),
		ErrorCodeUnavailable:     Unavailablef("x"),
		ErrorCodeTooManyRequests: TooManyRequestsf("x"),
		ErrorCodeTimeout:         Timeoutf("x"),
		ErrorCodeSearch:          Searchf("x"),
	}
	for code, err := range sugar {
		if !IsCode(err, code) {
			t.Fatalf("sugar for %s produced %s", code, CodeOf(err))
		}
	}

	if Wrap(nil, ErrorCodeDB, "nothing").(*Error).Unwrap() != nil {
		t.Fatalf("Wrap(nil) should carry no cause")
	}
}

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	if ErrorCodeTimeout.String() != "timeout" || ErrorCodeSearch.String() != "search" {
		t.Fatalf("unexpected names %q %q", ErrorCodeTimeout, ErrorCodeSearch)
	}
	if ErrorCode(9999).String() != "unknown" {
		t.Fatalf("unknown code should name itself unknown")
	}
}
