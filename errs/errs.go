// Package errs defines the error taxonomy shared by every lifelib package.
//
// Each failure is an *Error carrying a Kind. Errors unwrap to the sentinel of
// their kind, so callers branch with errors.Is:
//
//	if errors.Is(err, errs.ErrOutOfRange) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindDataIntegrity marks a malformed raw table.
	KindDataIntegrity Kind = iota + 1
	// KindValidation marks a calculation parameter that breaks a cross-field rule.
	KindValidation
	// KindOutOfRange marks a lookup outside the table's representable domain.
	KindOutOfRange
	// KindConfig marks a required parameter that was not supplied.
	KindConfig
	// KindComputation marks a numeric path that would yield NaN or Inf.
	KindComputation
)

// Sentinels returned by Unwrap.
var (
	ErrDataIntegrity = errors.New("data integrity")
	ErrValidation    = errors.New("validation")
	ErrOutOfRange    = errors.New("out of range")
	ErrConfig        = errors.New("config")
	ErrComputation   = errors.New("computation")
)

func (k Kind) String() string {
	switch k {
	case KindDataIntegrity:
		return "data integrity"
	case KindValidation:
		return "validation"
	case KindOutOfRange:
		return "out of range"
	case KindConfig:
		return "config"
	case KindComputation:
		return "computation"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindDataIntegrity:
		return ErrDataIntegrity
	case KindValidation:
		return ErrValidation
	case KindOutOfRange:
		return ErrOutOfRange
	case KindConfig:
		return ErrConfig
	case KindComputation:
		return ErrComputation
	default:
		return nil
	}
}

// Error is a classified lifelib failure.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "mortality.FromQxRows".
	Op string
	// Field names the offending parameter, if any.
	Field string
	Msg   string
	// Err is an optional underlying cause.
	Err error

	// rule marks an out-of-range age rejected by parameter validation; such
	// errors also match ErrValidation.
	rule bool
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return e.Kind.String() + " error: " + msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}

	out := []error{e.Kind.sentinel()}
	if e.rule && e.Kind != KindValidation {
		out = append(out, ErrValidation)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}

	return out
}

func newf(kind Kind, op, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// DataIntegrity reports a malformed raw table.
func DataIntegrity(op, format string, args ...any) error {
	return newf(KindDataIntegrity, op, "", format, args...)
}

// Validation reports a rule violated by the named field.
func Validation(op, field, format string, args ...any) error {
	return newf(KindValidation, op, field, format, args...)
}

// OutOfRange reports a lookup outside the table domain.
func OutOfRange(op, field, format string, args ...any) error {
	return newf(KindOutOfRange, op, field, format, args...)
}

// Domain reports a parameter that puts an age outside the table domain. It is
// an OutOfRange error that also satisfies errors.Is(err, ErrValidation).
func Domain(op, field, format string, args ...any) error {
	e := newf(KindOutOfRange, op, field, format, args...)
	e.rule = true
	return e
}

// Config reports a missing required parameter.
func Config(op, field, format string, args ...any) error {
	return newf(KindConfig, op, field, format, args...)
}

// Computation reports a numeric failure such as division by a zero Dx.
func Computation(op, format string, args ...any) error {
	return newf(KindComputation, op, "", format, args...)
}

// Wrap attaches op context to err, keeping its kind when err is already an *Error.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		inner := e.Op
		if inner != "" {
			inner = op + ": " + inner
		} else {
			inner = op
		}
		return &Error{Kind: e.Kind, Op: inner, Field: e.Field, Msg: e.Msg, Err: e.Err, rule: e.rule}
	}

	return &Error{Kind: KindComputation, Op: op, Msg: "unexpected failure", Err: err}
}

// KindOf returns the kind of err, or 0 when err is not a lifelib error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

// FieldOf returns the offending field recorded on err, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}

	return ""
}
