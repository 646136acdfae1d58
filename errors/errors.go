package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // bytes to Header
	PhaseEncode   Phase = "encode"   // Header to bytes
	PhaseValidate Phase = "validate" // magic/cpu/length checks
	PhaseLoad     Phase = "load"     // segment layout of a whole file
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBounds  Kind = "out_of_bounds"
	KindInvalidData  Kind = "invalid_data"
	KindBadMagic     Kind = "bad_magic"
	KindBadLength    Kind = "bad_header_length"
	KindUnknownCPU   Kind = "unknown_cpu"
	KindInvalidInput Kind = "invalid_input"
	KindIO           Kind = "io"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Field  string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Field)
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Field sets the header field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Offset sets the byte offset of the field
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
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

// Convenience constructors for common error patterns

// Truncated creates an out of bounds error for a field that does not fit in the input
func Truncated(phase Phase, field string, offset, width, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Field:  field,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, have %d", width, have),
	}
}

// BadMagic creates a validation error for an unrecognized magic number
func BadMagic(got [2]byte) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindBadMagic,
		Field:  "a_magic",
		Detail: fmt.Sprintf("magic %#04x %#04x is not an a.out executable", got[0], got[1]),
		Value:  got,
	}
}

// BadHeaderLength creates a validation error for a header length that is neither form
func BadHeaderLength(got uint8, short, long int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindBadLength,
		Field:  "a_hdrlen",
		Offset: 4,
		Detail: fmt.Sprintf("header length %d, want %d or %d", got, short, long),
		Value:  got,
	}
}

// UnknownCPU creates a validation error for an unrecognized cpu id
func UnknownCPU(got uint8) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnknownCPU,
		Field:  "a_cpu",
		Offset: 3,
		Detail: fmt.Sprintf("cpu id %#04x", got),
		Value:  got,
	}
}

// SegmentOutOfBounds creates a load error for a segment extending past the file
func SegmentOutOfBounds(segment string, offset, size, fileSize int64) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindOutOfBounds,
		Field:  segment,
		Offset: int(offset),
		Detail: fmt.Sprintf("segment of %d bytes ends at %d, file is %d bytes", size, offset+size, fileSize),
		Value:  size,
	}
}

// HeaderTooShort creates a load error for an a_hdrlen that would place the
// text segment inside the header fields
func HeaderTooShort(got uint8, need int) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Field:  "a_hdrlen",
		Offset: 4,
		Detail: fmt.Sprintf("header length %d is less than the %d bytes of header fields", got, need),
		Value:  got,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
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

// Load creates a file loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}
