package stream

import (
	"io"

	"github.com/wippyai/memstream/errors"
)

// Backend is the private state bound to a Stream. Close is mandatory.
// Read, Write and Seek are bound when the backend also implements
// io.Reader, io.Writer or io.Seeker.
type Backend interface {
	Close() error
}

// Funcs holds explicit operation slots for Open. Every slot receives the
// cookie given to Open, unmodified. Close is mandatory; the other slots
// may be nil.
type Funcs struct {
	Read  func(cookie any, p []byte) (int, error)
	Write func(cookie any, p []byte) (int, error)
	Seek  func(cookie any, offset int64, whence int) (int64, error)
	Close func(cookie any) error
}

// Stream forwards every call to the operation slot bound at creation,
// passing back the bound state. It implements io.ReadWriteSeeker and
// io.Closer.
type Stream struct {
	state  any
	fns    Funcs
	name   string
	closed bool
}

// Bind creates a stream whose slots are the methods of state.
func Bind(state Backend) (*Stream, error) {
	if state == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, "", "nil stream state")
	}

	fns := Funcs{
		Close: func(c any) error { return c.(Backend).Close() },
	}
	if _, ok := state.(io.Reader); ok {
		fns.Read = func(c any, p []byte) (int, error) { return c.(io.Reader).Read(p) }
	}
	if _, ok := state.(io.Writer); ok {
		fns.Write = func(c any, p []byte) (int, error) { return c.(io.Writer).Write(p) }
	}
	if _, ok := state.(io.Seeker); ok {
		fns.Seek = func(c any, off int64, whence int) (int64, error) { return c.(io.Seeker).Seek(off, whence) }
	}

	s := &Stream{state: state, fns: fns}
	if n, ok := state.(interface{ Name() string }); ok {
		s.name = n.Name()
	}
	return s, nil
}

// Open creates a stream from explicit slots and an opaque cookie.
func Open(cookie any, fns Funcs) (*Stream, error) {
	if fns.Close == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, "", "close operation is mandatory")
	}
	return &Stream{state: cookie, fns: fns}, nil
}

// Read reads up to len(p) bytes through the bound read slot.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, errors.UseAfterClose(errors.PhaseRead, s.name)
	}
	if s.fns.Read == nil {
		return 0, errors.Unsupported(errors.PhaseRead, "read operation not bound")
	}
	return s.fns.Read(s.state, p)
}

// Write writes through the bound write slot. A count smaller than len(p)
// with a nil error is a partial write, not a failure.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, errors.UseAfterClose(errors.PhaseWrite, s.name)
	}
	if s.fns.Write == nil {
		return 0, errors.Unsupported(errors.PhaseWrite, "write operation not bound")
	}
	return s.fns.Write(s.state, p)
}

// Seek repositions the stream through the bound seek slot.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, errors.UseAfterClose(errors.PhaseSeek, s.name)
	}
	if s.fns.Seek == nil {
		return 0, errors.Unsupported(errors.PhaseSeek, "seek operation not bound")
	}
	return s.fns.Seek(s.state, offset, whence)
}

// Close runs the close slot exactly once. The state is released even when
// the slot reports an error; later calls fail with a use-after-close error.
func (s *Stream) Close() error {
	if s.closed {
		return errors.UseAfterClose(errors.PhaseClose, s.name)
	}
	s.closed = true
	closeFn, state := s.fns.Close, s.state
	s.state = nil
	s.fns = Funcs{}
	return closeFn(state)
}

// Capabilities is implemented by states whose read or write support
// depends on how they were opened, such as a write-only fixed stream.
type Capabilities interface {
	CanRead() bool
	CanWrite() bool
}

// Readable reports whether a read slot is bound and the state, when it
// implements Capabilities, accepts reads.
func (s *Stream) Readable() bool {
	if c, ok := s.state.(Capabilities); ok && !c.CanRead() {
		return false
	}
	return s.fns.Read != nil
}

// Writable reports whether a write slot is bound and the state, when it
// implements Capabilities, accepts writes.
func (s *Stream) Writable() bool {
	if c, ok := s.state.(Capabilities); ok && !c.CanWrite() {
		return false
	}
	return s.fns.Write != nil
}

// Seekable reports whether a seek slot is bound.
func (s *Stream) Seekable() bool { return s.fns.Seek != nil }

// Closed reports whether Close has run.
func (s *Stream) Closed() bool { return s.closed }

// State returns the bound state, or nil after Close.
func (s *Stream) State() any { return s.state }

// WriteAll writes p in full, looping over partial writes. It fails with a
// capacity-exhausted error wrapping io.ErrShortWrite once a write makes no
// progress.
func WriteAll(w io.Writer, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := w.Write(p[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, errors.Wrap(errors.PhaseWrite, errors.KindCapacityExhausted, io.ErrShortWrite,
				"stream accepted no more bytes")
		}
	}
	return total, nil
}
