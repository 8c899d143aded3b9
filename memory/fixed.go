package memory

import (
	"bytes"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/stream"
)

const fixedName = "fixed"

// Fixed is a stream over a caller-owned buffer of fixed capacity. The
// buffer is never reallocated and never released by the stream.
type Fixed struct {
	region
	capacity int
	mode     Mode
	closed   bool
}

// NewFixed opens buf[:capacity] with the given fopen-style mode.
//
// The initial high-water mark depends on the mode: 'w' truncates to 0 and
// zero-fills the buffer, 'a' starts at the first zero byte, and any other
// mode exposes the whole capacity as readable content.
func NewFixed(buf []byte, capacity int, mode string) (*Fixed, error) {
	if buf == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, fixedName, "nil buffer")
	}
	if capacity < 0 || capacity > len(buf) {
		return nil, errors.New(errors.PhaseOpen, errors.KindInvalidArgument).
			Stream(fixedName).
			Value(capacity).
			Detail("capacity %d outside buffer of %d bytes", capacity, len(buf)).
			Build()
	}
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	buf = buf[:capacity:capacity]
	f := &Fixed{
		region:   region{buf: buf},
		capacity: capacity,
		mode:     m,
	}

	switch {
	case m.Truncate:
		clear(buf)
	case m.Append:
		f.end = capacity
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			f.end = i
		}
	default:
		f.end = capacity
	}
	if m.Append {
		f.pos = f.end
	}

	Logger().Debug("fixed stream opened",
		zap.Int("capacity", capacity),
		zap.String("mode", m.String()),
		zap.Int("hwm", f.end))
	return f, nil
}

// OpenFixed opens buf[:capacity] and binds it to a generic stream.
func OpenFixed(buf []byte, capacity int, mode string) (*stream.Stream, error) {
	f, err := NewFixed(buf, capacity, mode)
	if err != nil {
		return nil, err
	}
	return stream.Bind(f)
}

// Name identifies the stream variant in errors.
func (f *Fixed) Name() string { return fixedName }

// Read copies up to len(p) bytes between the position and the high-water
// mark. It returns io.EOF once the position reaches the high-water mark.
func (f *Fixed) Read(p []byte) (int, error) {
	if f.closed {
		return 0, errors.UseAfterClose(errors.PhaseRead, fixedName)
	}
	if !f.mode.Read {
		return 0, errors.NotReadable(fixedName)
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := f.read(p)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write copies as much of p as fits before capacity. A short count with a
// nil error means the buffer is exhausted; it is not a failure.
func (f *Fixed) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errors.UseAfterClose(errors.PhaseWrite, fixedName)
	}
	if !f.mode.Write {
		return 0, errors.NotWritable(fixedName)
	}
	return f.write(p, f.capacity), nil
}

// Seek moves the position within [0, capacity]. io.SeekEnd is relative to
// the high-water mark, which seeking never changes.
func (f *Fixed) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, errors.UseAfterClose(errors.PhaseSeek, fixedName)
	}
	next, ok := f.target(offset, whence, f.capacity)
	if !ok {
		return 0, errors.InvalidSeek(fixedName, offset, whence, f.capacity)
	}
	f.pos = next
	return int64(next), nil
}

// Close drops the stream's reference to the buffer. The caller's memory is
// left as is.
func (f *Fixed) Close() error {
	if f.closed {
		return errors.UseAfterClose(errors.PhaseClose, fixedName)
	}
	f.closed = true
	f.buf = nil
	return nil
}

// Pos returns the current position.
func (f *Fixed) Pos() int { return f.pos }

// HighWaterMark returns the furthest valid byte offset.
func (f *Fixed) HighWaterMark() int { return f.end }

// Cap returns the fixed capacity.
func (f *Fixed) Cap() int { return f.capacity }

// Mode returns the parsed open mode.
func (f *Fixed) Mode() Mode { return f.mode }

// CanRead implements stream.Capabilities.
func (f *Fixed) CanRead() bool { return f.mode.Read }

// CanWrite implements stream.Capabilities.
func (f *Fixed) CanWrite() bool { return f.mode.Write }

// Bytes returns the valid content, buf[:HighWaterMark()]. It aliases the
// caller's buffer and is nil after Close.
func (f *Fixed) Bytes() []byte {
	if f.buf == nil {
		return nil
	}
	return f.buf[:f.end]
}
