// Package bind decodes request bodies into forms and validates them.
//
// Failures come back as project errors: malformed input is ErrorCodeJSON,
// a rejected field is ErrorCodeValidation carrying the field's json name.
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	perr "inputdash/internal/platform/errors"
	"inputdash/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DateLayout is the calendar date format accepted on search forms
const DateLayout = "2006-01-02"

// DefaultMaxBytes bounds a body unless MaxBytes says otherwise
const DefaultMaxBytes = 64 << 10

// checker pairs the validator with the translator its messages come from
type checker struct {
	v     *validator.Validate
	trans ut.Translator
}

var shared = sync.OnceValue(newChecker)

// custom message templates; {0} is the field, {1} the tag param
var messages = map[string]string{
	"min":   "{0} must be at least {1}",
	"max":   "{0} must be at most {1}",
	"oneof": "{0} must be one of [{1}]",
	"date":  "{0} must be a date in YYYY-MM-DD form",
}

func newChecker() *checker {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("date", isDate)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(fe.Tag(), fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &checker{v: v, trans: trans}
}

// jsonName reports fields by their json key so errors match the wire form
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// isDate accepts YYYY-MM-DD and the empty string
func isDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

type options struct {
	maxBytes     int64
	allowUnknown bool
	requireBody  bool
}

// Option adjusts ParseJSON
type Option func(*options)

// MaxBytes caps the body; n <= 0 removes the cap
func MaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

// AllowUnknown accepts keys the form does not declare
func AllowUnknown() Option { return func(o *options) { o.allowUnknown = true } }

// RequireBody rejects an empty body instead of treating it as the zero form
func RequireBody() Option { return func(o *options) { o.requireBody = true } }

// ParseJSON decodes exactly one JSON value from the body into T and validates it.
// An empty body yields the zero T unless RequireBody is given.
func ParseJSON[T any](r *http.Request, opts ...Option) (T, error) {
	o := options{maxBytes: DefaultMaxBytes}
	for _, fn := range opts {
		fn(&o)
	}

	var dst T
	if r.Body == nil {
		r.Body = http.NoBody
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	var src io.Reader = r.Body
	if o.maxBytes > 0 {
		src = io.LimitReader(src, o.maxBytes)
	}
	br := bufio.NewReader(src)
	if _, err := br.Peek(1); err != nil {
		if o.requireBody {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, Validate(dst)
	}

	dec := json.NewDecoder(br)
	if !o.allowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	return dst, Validate(dst)
}

// Validate runs struct validation and returns a Validation error naming the first bad field
func Validate(v any) error {
	err := shared().v.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	field, msg := FirstViolation(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FirstViolation returns the first failing field and its translated message.
// Errors that are not validation failures come back with no field.
func FirstViolation(err error) (field, message string) {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return "", ""
	case errors.As(err, &verrs) && len(verrs) > 0:
		fe := verrs[0]
		return fe.Field(), fe.Translate(shared().trans)
	default:
		return "", err.Error()
	}
}
