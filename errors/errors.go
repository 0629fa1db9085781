package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the marshalling boundary the error occurred
type Phase string

const (
	PhaseToValue   Phase = "to_value"   // native to dynamic conversion
	PhaseFromValue Phase = "from_value" // dynamic to native conversion
	PhaseExtract   Phase = "extract"    // per-argument extraction
	PhaseCall      Phase = "call"       // wrapped function invocation
	PhaseWrap      Phase = "wrap"       // callable construction
	PhaseGlobal    Phase = "global"     // ambient global access
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindOutOfRange     Kind = "out_of_range"
	KindEncoding       Kind = "encoding"
	KindTooFewArgs     Kind = "too_few_args"
	KindTooManyArgs    Kind = "too_many_args"
	KindDuplicateKey   Kind = "duplicate_key"
	KindBorrowConflict Kind = "borrow_conflict"
	KindForeign        Kind = "foreign"
	KindBadSignature   Kind = "bad_signature"
	KindNotRegistered  Kind = "not_registered"
	KindLengthMismatch Kind = "length_mismatch"
	KindUnsupported    Kind = "unsupported"
)

// Error is the structured error type used across the boundary. Every
// conversion, extraction and call failure surfaces as an *Error; it is
// never re-wrapped when it crosses another layer of this package's
// machinery, so non-local signalling survives end to end.
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	ValType string
	Path    []string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.ValType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.ValType != "" {
			b.WriteString("expected ")
			b.WriteString(e.GoType)
			b.WriteString(", received ")
			b.WriteString(e.ValType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("value type ")
			b.WriteString(e.ValType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.ValType != "" {
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

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the native type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ValType sets the dynamic type name
func (b *Builder) ValType(t string) *Builder {
	b.err.ValType = t
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

// TypeMismatch creates a type mismatch error naming both the expected
// native type and the actual dynamic type.
func TypeMismatch(phase Phase, goType, valType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		GoType:  goType,
		ValType: valType,
	}
}

// OutOfRange creates a numeric range error for a value that does not fit
// the target width.
func OutOfRange(phase Phase, value any, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		GoType: goType,
		Detail: fmt.Sprintf("value %v is outside the range of %s", value, goType),
		Value:  value,
	}
}

// InvalidUTF8 creates an encoding error for non-text bytes.
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InteriorNul creates an encoding error for a string holding an embedded
// NUL byte where none is allowed.
func InteriorNul(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Detail: "string contains an interior NUL byte",
	}
}

// TooFewArgs creates an arity error reporting the received count and the
// minimum bound it violated.
func TooFewArgs(received, min int) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindTooFewArgs,
		Detail: fmt.Sprintf("too few arguments: received %d, expected at least %d", received, min),
		Value:  received,
	}
}

// TooManyArgs creates an arity error reporting the received count and the
// maximum bound it violated.
func TooManyArgs(received, max int) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindTooManyArgs,
		Detail: fmt.Sprintf("too many arguments: received %d, expected no more than %d", received, max),
		Value:  received,
	}
}

// DuplicateKey creates a map conversion error for two distinct dynamic
// keys converting to the same native key.
func DuplicateKey(phase Phase, key any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateKey,
		Detail: fmt.Sprintf("duplicate key %v in map argument", key),
		Value:  key,
	}
}

// BorrowConflict creates a borrow discipline violation error.
func BorrowConflict(goType, requested, outstanding string) *Error {
	return &Error{
		Phase:  PhaseExtract,
		Kind:   KindBorrowConflict,
		GoType: goType,
		Detail: fmt.Sprintf("cannot take %s borrow while %s borrow is outstanding", requested, outstanding),
	}
}

// Foreign wraps a native error that is not the runtime's own error type,
// naming its concrete Go type.
func Foreign(phase Phase, goType string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindForeign,
		GoType: goType,
		Detail: fmt.Sprintf("native error of type %s", goType),
		Cause:  cause,
	}
}

// BadSignature creates a callable construction error for an illegal
// parameter ordering or an unsupported function shape.
func BadSignature(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseWrap,
		Kind:   KindBadSignature,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NotRegistered creates an error for a missing ambient global.
func NotRegistered(goType string) *Error {
	return &Error{
		Phase:  PhaseGlobal,
		Kind:   KindNotRegistered,
		GoType: goType,
		Detail: fmt.Sprintf("no ambient global of type %s is registered", goType),
	}
}

// LengthMismatch creates an error for a fixed-size destination whose
// length does not match the source container.
func LengthMismatch(phase Phase, received, expected int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Detail: fmt.Sprintf("received %d elements, expected exactly %d", received, expected),
		Value:  received,
	}
}

// Unsupported creates an error for a native type with no conversion.
func Unsupported(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		GoType: goType,
		Detail: fmt.Sprintf("no conversion exists for %s", goType),
	}
}
