package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stream operation produced the error
type Phase string

const (
	PhaseOpen  Phase = "open"  // stream creation
	PhaseRead  Phase = "read"  // read
	PhaseWrite Phase = "write" // write
	PhaseSeek  Phase = "seek"  // seek
	PhaseClose Phase = "close" // close
	PhaseGrow  Phase = "grow"  // buffer reallocation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArgument   Kind = "invalid_argument"
	KindNotReadable       Kind = "not_readable"
	KindNotWritable       Kind = "not_writable"
	KindInvalidSeek       Kind = "invalid_seek"
	KindOutOfMemory       Kind = "out_of_memory"
	KindUnsupported       Kind = "unsupported"
	KindUseAfterClose     Kind = "use_after_close"
	KindCapacityExhausted Kind = "capacity_exhausted"
	KindOutOfBounds       Kind = "out_of_bounds"
)

// Sentinels for errors.Is. They carry only a Kind, so they match an
// *Error of the same kind raised in any phase.
var (
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrNotReadable       = &Error{Kind: KindNotReadable}
	ErrNotWritable       = &Error{Kind: KindNotWritable}
	ErrInvalidSeek       = &Error{Kind: KindInvalidSeek}
	ErrOutOfMemory       = &Error{Kind: KindOutOfMemory}
	ErrUnsupported       = &Error{Kind: KindUnsupported}
	ErrUseAfterClose     = &Error{Kind: KindUseAfterClose}
	ErrCapacityExhausted = &Error{Kind: KindCapacityExhausted}
	ErrOutOfBounds       = &Error{Kind: KindOutOfBounds}
)

// Error is the structured error type returned by every stream operation
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Stream string
	Detail string
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

	if e.Stream != "" {
		b.WriteString(" on ")
		b.WriteString(e.Stream)
		b.WriteString(" stream")
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

// Is reports whether target matches this error. A target without a
// phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// KindOf returns the Kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return "", false
		}
		err = u.Unwrap()
	}
	return "", false
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

// Stream sets the stream variant name
func (b *Builder) Stream(name string) *Builder {
	b.err.Stream = name
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

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, stream, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Stream: stream,
		Detail: detail,
	}
}

// NotReadable creates a capability error for reads on a write-only stream
func NotReadable(stream string) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindNotReadable,
		Stream: stream,
		Detail: "stream not opened for reading",
	}
}

// NotWritable creates a capability error for writes on a read-only stream
func NotWritable(stream string) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindNotWritable,
		Stream: stream,
		Detail: "stream not opened for writing",
	}
}

// InvalidSeek creates an out-of-range seek error
func InvalidSeek(stream string, offset int64, whence int, limit int) *Error {
	return &Error{
		Phase:  PhaseSeek,
		Kind:   KindInvalidSeek,
		Stream: stream,
		Detail: fmt.Sprintf("offset %d whence %d outside [0, %d]", offset, whence, limit),
		Value:  offset,
	}
}

// OutOfMemory creates an allocation refusal error
func OutOfMemory(phase Phase, stream string, size int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Stream: stream,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
		Cause:  cause,
	}
}

// Unsupported creates an error for an operation slot that was never bound
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// UseAfterClose creates an error for operations on a closed stream or stale handle
func UseAfterClose(phase Phase, stream string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterClose,
		Stream: stream,
		Detail: "stream already closed",
	}
}

// OutOfBounds creates an error for a memory region outside its backing store
func OutOfBounds(phase Phase, offset, length, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("region [%d, %d) outside memory of %d bytes", offset, offset+length, size),
		Value:  offset,
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
