// Package errors carries a stable ErrorCode alongside a user facing message.
//
// Import it as perr. Codes map to HTTP statuses in one table, and the Wire
// form is what the envelope puts on the response.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"

	pkgerrs "github.com/pkg/errors"
)

// ErrorCode is the machine facing classification carried on the wire.
// Values are stable; append new codes at the end.
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic is a panic recovered by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is a dependency that is down or not configured
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	// ErrorCodeInvalidArgument is well formed input the API cannot serve
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is input rejected by struct validation
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDB
	// ErrorCodeTimeout is a search backend that did not answer in time
	ErrorCodeTimeout
	// ErrorCodeSearch is a search backend failure, including per query errors
	ErrorCodeSearch
)

var codeTable = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests: {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
	ErrorCodeTimeout:         {"timeout", http.StatusGatewayTimeout},
	ErrorCodeSearch:          {"search", http.StatusBadGateway},
}

func (c ErrorCode) known() bool { return int(c) < len(codeTable) }

// String names the code for logs
func (c ErrorCode) String() string {
	if !c.known() {
		return codeTable[ErrorCodeUnknown].name
	}
	return codeTable[c].name
}

// HTTPStatusCode is the response status for c; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if !c.known() {
		return http.StatusInternalServerError
	}
	return codeTable[c].status
}

// Error is the project error. The cause, when present, carries a stack trace
// that zerolog prints when the error is logged with Stack().
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

// Wire is the JSON form of an Error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	default:
		return e.msg
	}
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() ErrorCode { return e.code }

// Message is the text without the cause; it is what clients see
func (e *Error) Message() string { return e.msg }

// Field names the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op labels where the error happened, e.g. the failing query name
func (e *Error) Op() string { return e.op }

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of the first *Error in err's chain, or Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err classifies as code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom converts any error for the envelope; foreign errors keep their text as Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// with returns a copy of the first *Error in err with mut applied; foreign errors pass through
func with(err error, mut func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	mut(&c)
	return &c
}

// WithField names the offending input field
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp labels the operation that failed
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// New returns an Error with no cause
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap classifies cause under code, recording the stack at the call site
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: pkgerrs.WithStack(cause)}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// shorthands for Newf with a fixed code
func InvalidArgf(format string, a ...any) error      { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error         { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error        { return Newf(ErrorCodePanic, format, a...) }
func Unavailablef(format string, a ...any) error     { return Newf(ErrorCodeUnavailable, format, a...) }
func TooManyRequestsf(format string, a ...any) error { return Newf(ErrorCodeTooManyRequests, format, a...) }
func Timeoutf(format string, a ...any) error         { return Newf(ErrorCodeTimeout, format, a...) }
func Searchf(format string, a ...any) error          { return Newf(ErrorCodeSearch, format, a...) }
