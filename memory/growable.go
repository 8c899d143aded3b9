package memory

import (
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/memstream"
	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/stream"
)

const growableName = "growable"

// Growable is a stream over an allocator-owned buffer that grows on demand.
// After every successful write the buffer and logical length are handed to
// the Publisher, with a zero byte at buf[length].
type Growable struct {
	region
	alloc  memstream.Allocator
	pub    memstream.Publisher
	factor int
	grows  int
	closed bool
}

// NewGrowable allocates the initial buffer and publishes it with length 0.
// A nil cfg uses NewConfig().
func NewGrowable(pub memstream.Publisher, cfg *Config) (*Growable, error) {
	if pub == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, growableName, "nil publisher")
	}
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	buf, err := cfg.Allocator.Realloc(nil, cfg.InitialCapacity)
	if err != nil {
		return nil, errors.OutOfMemory(errors.PhaseOpen, growableName, cfg.InitialCapacity, err)
	}
	if len(buf) < cfg.InitialCapacity {
		return nil, errors.OutOfMemory(errors.PhaseOpen, growableName, cfg.InitialCapacity, nil)
	}
	clear(buf)

	g := &Growable{
		region: region{buf: buf},
		alloc:  cfg.Allocator,
		pub:    pub,
		factor: cfg.GrowthFactor,
	}
	if err := pub.Publish(buf, 0); err != nil {
		return nil, errors.Wrap(errors.PhaseOpen, errors.KindInvalidArgument, err, "publish initial buffer")
	}

	Logger().Debug("growable stream opened", zap.Int("capacity", len(buf)))
	return g, nil
}

// Name identifies the stream variant in errors.
func (g *Growable) Name() string { return growableName }

// Read copies up to len(p) bytes between the position and the logical
// length, returning io.EOF at the end.
func (g *Growable) Read(p []byte) (int, error) {
	if g.closed {
		return 0, errors.UseAfterClose(errors.PhaseRead, growableName)
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := g.read(p)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write stores all of p at the position, growing the buffer first when
// position+len(p) reaches capacity. On allocation or publish failure
// nothing is written and position and length are unchanged. A growth that
// preceded a failed publish is kept and republished with the old length.
func (g *Growable) Write(p []byte) (int, error) {
	if g.closed {
		return 0, errors.UseAfterClose(errors.PhaseWrite, growableName)
	}
	if len(p) > math.MaxInt-g.pos {
		return 0, errors.OutOfMemory(errors.PhaseWrite, growableName, math.MaxInt, nil)
	}
	need := g.pos + len(p)
	grew := false
	if need >= len(g.buf) {
		if err := g.grow(need); err != nil {
			return 0, err
		}
		grew = true
	}

	// buf[end] is past the valid bytes, so the terminator can go in first.
	end := max(g.end, need)
	g.buf[end] = 0
	if err := g.pub.Publish(g.buf, end); err != nil {
		if grew {
			_ = g.pub.Publish(g.buf, g.end)
		}
		return 0, errors.Wrap(errors.PhaseWrite, errors.KindOutOfBounds, err, "publish buffer")
	}
	return g.write(p, len(g.buf)), nil
}

// grow reallocates to max(capacity, (need+1)*factor) so need bytes plus
// the terminator fit.
func (g *Growable) grow(need int) error {
	if need >= math.MaxInt/g.factor {
		return errors.OutOfMemory(errors.PhaseGrow, growableName, math.MaxInt, nil)
	}
	size := (need + 1) * g.factor
	if size < len(g.buf) {
		size = len(g.buf)
	}

	buf, err := g.alloc.Realloc(g.buf, size)
	if err != nil {
		Logger().Debug("growth refused", zap.Int("from", len(g.buf)), zap.Int("to", size), zap.Error(err))
		return errors.OutOfMemory(errors.PhaseGrow, growableName, size, err)
	}
	if len(buf) < size {
		return errors.OutOfMemory(errors.PhaseGrow, growableName, size, nil)
	}

	Logger().Debug("grow", zap.Int("from", len(g.buf)), zap.Int("to", size))
	g.buf = buf
	g.grows++
	return nil
}

// Seek moves the position within [0, length]. io.SeekEnd is relative to
// the logical length.
func (g *Growable) Seek(offset int64, whence int) (int64, error) {
	if g.closed {
		return 0, errors.UseAfterClose(errors.PhaseSeek, growableName)
	}
	next, ok := g.target(offset, whence, g.end)
	if !ok {
		return 0, errors.InvalidSeek(growableName, offset, whence, g.end)
	}
	g.pos = next
	return int64(next), nil
}

// Close releases the stream's bookkeeping. The buffer already belongs to
// whoever received it through the Publisher and is not touched.
func (g *Growable) Close() error {
	if g.closed {
		return errors.UseAfterClose(errors.PhaseClose, growableName)
	}
	g.closed = true
	g.buf = nil
	g.alloc = nil
	g.pub = nil
	return nil
}

// Pos returns the current position.
func (g *Growable) Pos() int { return g.pos }

// Len returns the logical length.
func (g *Growable) Len() int { return g.end }

// Cap returns the current allocation size.
func (g *Growable) Cap() int { return len(g.buf) }

// Grows returns how many reallocations have happened since open.
func (g *Growable) Grows() int { return g.grows }

// OpenGrowable opens a growable stream with the default configuration.
func OpenGrowable() (*stream.Stream, *Buffer, error) {
	return NewConfig().OpenGrowable()
}
