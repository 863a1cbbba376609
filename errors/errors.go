package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseOpen    Phase = "open"    // codec resolution
	PhaseConvert Phase = "convert" // chunked conversion
	PhaseDecode  Phase = "decode"  // scalar assembly
)

// Kind categorizes the error
type Kind string

const (
	KindBufferTooSmall     Kind = "buffer_too_small"
	KindIllegalSequence    Kind = "illegal_sequence"
	KindIncompleteSequence Kind = "incomplete_sequence"
	KindNilInput           Kind = "nil_input"
	KindUnknownEncoding    Kind = "unknown_encoding"
	KindClosed             Kind = "closed"
	KindUnknown            Kind = "unknown"
)

// ErrIllegalSequence is the raw signal for input bytes that do not form a
// valid sequence in the source encoding. Conversion pipelines return it
// directly; Classify maps it to KindIllegalSequence.
var ErrIllegalSequence = stderrors.New("recoder: illegal byte sequence")

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	From   string
	To     string
	Detail string
	Offset int // input byte offset where conversion stopped, when known
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.From != "" || e.To != "" {
		b.WriteString(": ")
		if e.From != "" && e.To != "" {
			b.WriteString(e.From)
			b.WriteString(" -> ")
			b.WriteString(e.To)
		} else if e.From != "" {
			b.WriteString("from ")
			b.WriteString(e.From)
		} else {
			b.WriteString("to ")
			b.WriteString(e.To)
		}
	}

	if e.Offset > 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		if e.From != "" || e.To != "" || e.Offset > 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// From sets the source encoding name
func (b *Builder) From(name string) *Builder {
	b.err.From = name
	return b
}

// To sets the target encoding name
func (b *Builder) To(name string) *Builder {
	b.err.To = name
	return b
}

// Offset sets the input byte offset where conversion stopped
func (b *Builder) Offset(n int) *Builder {
	b.err.Offset = n
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Classify maps a raw conversion signal to exactly one Kind. Classification
// is total: any signal outside the known set maps to KindUnknown. A nil
// error maps to the empty Kind.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	switch {
	case stderrors.Is(err, transform.ErrShortDst):
		return KindBufferTooSmall
	case stderrors.Is(err, transform.ErrShortSrc):
		return KindIncompleteSequence
	case stderrors.Is(err, ErrIllegalSequence):
		return KindIllegalSequence
	case stderrors.Is(err, encoding.ErrInvalidUTF8):
		return KindIllegalSequence
	}
	// Encoders signal a rune outside the target repertoire with an error
	// carrying a suggested replacement byte.
	var rep interface{ Replacement() byte }
	if stderrors.As(err, &rep) {
		return KindIllegalSequence
	}
	return KindUnknown
}

// FromSignal wraps a raw conversion signal into a classified Error carrying
// the conversion context. An already classified *Error passes through
// unchanged.
func FromSignal(phase Phase, from, to string, offset int, err error) *Error {
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	switch Classify(err) {
	case KindBufferTooSmall:
		return BufferTooSmall(phase, from, to, offset, err)
	case KindIncompleteSequence:
		return IncompleteSequence(phase, from, to, offset, err)
	case KindIllegalSequence:
		return IllegalSequence(phase, from, to, offset, err)
	default:
		return New(phase, KindUnknown).
			From(from).
			To(to).
			Offset(offset).
			Cause(err).
			Detail("unclassified signal: %v", err).
			Build()
	}
}

// IsKind reports whether err is or wraps an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == kind
}

// Convenience constructors for common error patterns

// UnknownEncoding creates an open failure for a name the codec registry does
// not recognize
func UnknownEncoding(name string) *Error {
	return &Error{
		Phase:  PhaseOpen,
		Kind:   KindUnknownEncoding,
		Detail: fmt.Sprintf("encoding %q not recognized", name),
		Value:  name,
	}
}

// InvalidName creates an open failure for a syntactically invalid encoding
// name
func InvalidName(name, reason string) *Error {
	return &Error{
		Phase:  PhaseOpen,
		Kind:   KindUnknownEncoding,
		Detail: fmt.Sprintf("encoding name %q %s", name, reason),
		Value:  name,
	}
}

// NilInput creates a precondition failure for a nil or empty input buffer
func NilInput(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilInput,
		Detail: "nil or empty input buffer",
	}
}

// Closed creates a use-after-close failure
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s already closed", what),
	}
}

// IllegalSequence creates a conversion failure for bytes that do not form a
// valid sequence in the source encoding
func IllegalSequence(phase Phase, from, to string, offset int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalSequence,
		From:   from,
		To:     to,
		Offset: offset,
		Detail: "input contains bytes invalid in the source encoding",
		Cause:  cause,
	}
}

// IncompleteSequence creates a conversion failure for input that ends in the
// middle of a multibyte sequence
func IncompleteSequence(phase Phase, from, to string, offset int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIncompleteSequence,
		From:   from,
		To:     to,
		Offset: offset,
		Detail: "input ends inside a multibyte sequence",
		Cause:  cause,
	}
}

// BufferTooSmall creates a conversion failure for a destination buffer that
// filled before the input was consumed
func BufferTooSmall(phase Phase, from, to string, offset int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBufferTooSmall,
		From:   from,
		To:     to,
		Offset: offset,
		Detail: "output buffer filled before input was consumed",
		Cause:  cause,
	}
}

// IllegalScalar creates a decode failure for a 32-bit unit that is not a
// valid Unicode scalar value
func IllegalScalar(unit uint32, index int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindIllegalSequence,
		Detail: fmt.Sprintf("code unit 0x%X at index %d is not a scalar value", unit, index),
		Value:  unit,
	}
}

// TruncatedUnits creates a decode failure for a unit buffer whose byte
// length is not a multiple of the unit width
func TruncatedUnits(length int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindIncompleteSequence,
		Detail: fmt.Sprintf("byte length %d is not a multiple of 4", length),
		Value:  length,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
