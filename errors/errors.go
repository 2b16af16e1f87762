package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAttach Phase = "attach" // runtime handle acquisition
	PhaseEncode Phase = "encode" // Go to remote
	PhaseDecode Phase = "decode" // remote to Go
	PhaseLookup Phase = "lookup" // class/method resolution
	PhaseInvoke Phase = "invoke" // remote call
	PhaseFacade Phase = "facade" // wrapper object state
	PhaseLoad   Phase = "load"   // script loading
	PhaseParse  Phase = "parse"  // signature parsing
)

// Kind categorizes the error
type Kind string

const (
	KindNotAttached   Kind = "not_attached"
	KindAllocation    Kind = "allocation"
	KindRemoteFault   Kind = "remote_fault"
	KindInvalidEnum   Kind = "invalid_enum"
	KindUseAfterClose Kind = "use_after_close"
	KindTypeMismatch  Kind = "type_mismatch"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindInvalidData   Kind = "invalid_data"
	KindInvalidUTF8   Kind = "invalid_utf8"
	KindOverflow      Kind = "overflow"
	KindNilPointer    Kind = "nil_pointer"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
)

// Sentinels for errors.Is. They carry no phase, so they match any error of
// the same kind.
var (
	ErrNotAttached   = &Error{Kind: KindNotAttached}
	ErrAllocation    = &Error{Kind: KindAllocation}
	ErrRemoteFault   = &Error{Kind: KindRemoteFault}
	ErrInvalidEnum   = &Error{Kind: KindInvalidEnum}
	ErrUseAfterClose = &Error{Kind: KindUseAfterClose}
	ErrNotFound      = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	RemoteType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.RemoteType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.RemoteType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", remote type ")
			b.WriteString(e.RemoteType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("remote type ")
			b.WriteString(e.RemoteType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.RemoteType != "" {
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

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
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

// Path sets the operation path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// RemoteType sets the remote type descriptor or class name
func (b *Builder) RemoteType(t string) *Builder {
	b.err.RemoteType = t
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, remoteType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		RemoteType: remoteType,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %s", what),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		Detail: what + " is null",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		RemoteType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// InvalidEnum creates an invalid enum value error
func InvalidEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindInvalidEnum,
		Path:       path,
		RemoteType: enumType,
		Detail:     fmt.Sprintf("invalid enum value %v for %s", value, enumType),
		Value:      value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
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

// NotAttached creates an error for a missing runtime handle
func NotAttached(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseAttach,
		Kind:   KindNotAttached,
		Detail: detail,
		Cause:  cause,
	}
}

// RemoteFault creates an error for a fault raised inside the embedded runtime.
// remoteClass is the binary class name of the captured throwable.
func RemoteFault(op, remoteClass, message string) *Error {
	return &Error{
		Phase:      PhaseInvoke,
		Kind:       KindRemoteFault,
		Path:       []string{op},
		RemoteType: remoteClass,
		Detail:     message,
	}
}

// UseAfterClose creates an error for an operation on a released facade
func UseAfterClose(what string) *Error {
	return &Error{
		Phase:  PhaseFacade,
		Kind:   KindUseAfterClose,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// Load creates a script loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
