package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCreate   Phase = "create"   // intercepted create/destroy calls
	PhaseRegister Phase = "register" // dispatch registry mutation
	PhaseLookup   Phase = "lookup"   // dispatch registry queries
	PhaseSink     Phase = "sink"     // log sink I/O
	PhaseConfig   Phase = "config"   // settings loading
	PhaseParse    Phase = "parse"    // event log parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInitialization Kind = "initialization"
	KindUpstream       Kind = "upstream"
	KindDuplicate      Kind = "duplicate"
	KindRegistration   Kind = "registration"
	KindNotFound       Kind = "not_found"
	KindClosed         Kind = "closed"
	KindIO             Kind = "io"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the layers
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Object string
	Detail string
	Handle uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Object != "" {
		b.WriteString(": ")
		b.WriteString(e.Object)
		if e.Handle != 0 {
			fmt.Fprintf(&b, " %#x", e.Handle)
		}
	}

	if e.Detail != "" {
		if e.Object != "" {
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

// Object sets the object class, e.g. "instance" or "shader module"
func (b *Builder) Object(name string) *Builder {
	b.err.Object = name
	return b
}

// Handle sets the driver handle involved
func (b *Builder) Handle(h uint64) *Builder {
	b.err.Handle = h
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

// Duplicate reports that a handle already has a registry entry
func Duplicate(phase Phase, object string, handle uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicate,
		Object: object,
		Handle: handle,
		Detail: "already registered",
	}
}

// Registration reports that a registry entry could not be completed
func Registration(object string, handle uint64, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Object: object,
		Handle: handle,
		Detail: "registration incomplete",
		Cause:  cause,
	}
}

// NotFound reports a lookup of a handle that was never registered
func NotFound(phase Phase, object string, handle uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Object: object,
		Handle: handle,
		Detail: "not registered",
	}
}

// Initialization reports a missing loader linkage record
func Initialization(object string) *Error {
	return &Error{
		Phase:  PhaseCreate,
		Kind:   KindInitialization,
		Object: object,
		Detail: "loader link info not found in create info chain",
	}
}

// Upstream wraps a failure returned by the next layer or driver
func Upstream(object string, cause error) *Error {
	return &Error{
		Phase:  PhaseCreate,
		Kind:   KindUpstream,
		Object: object,
		Cause:  cause,
	}
}

// SinkClosed reports a write to a sink after it was closed
func SinkClosed(name string) *Error {
	return &Error{
		Phase:  PhaseSink,
		Kind:   KindClosed,
		Object: name,
		Detail: "write after close",
	}
}

// SinkIO wraps an I/O failure on a sink
func SinkIO(name, op string, cause error) *Error {
	return &Error{
		Phase:  PhaseSink,
		Kind:   KindIO,
		Object: name,
		Detail: op,
		Cause:  cause,
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

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// ConfigFailed creates a configuration loading error
func ConfigFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
