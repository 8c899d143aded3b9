package memory

import (
	"github.com/wippyai/memstream"
	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/stream"
)

const (
	// DefaultInitialCapacity is the first allocation of a growable stream.
	DefaultInitialCapacity = 128
	// DefaultGrowthFactor doubles the requested size on growth.
	DefaultGrowthFactor = 2
)

// Config configures growable streams. Use builder methods to set up.
type Config struct {
	Allocator       memstream.Allocator
	InitialCapacity int
	GrowthFactor    int
}

// NewConfig returns the default configuration: 128 bytes on the Go heap,
// doubling on growth, no size limit.
func NewConfig() *Config {
	return &Config{
		Allocator:       memstream.HeapAllocator{},
		InitialCapacity: DefaultInitialCapacity,
		GrowthFactor:    DefaultGrowthFactor,
	}
}

// WithInitialCapacity sets the first allocation size
func (c *Config) WithInitialCapacity(n int) *Config {
	c.InitialCapacity = n
	return c
}

// WithGrowthFactor sets the growth multiplier
func (c *Config) WithGrowthFactor(f int) *Config {
	c.GrowthFactor = f
	return c
}

// WithAllocator sets the allocator
func (c *Config) WithAllocator(a memstream.Allocator) *Config {
	c.Allocator = a
	return c
}

// WithLimit caps every allocation at n bytes on the Go heap
func (c *Config) WithLimit(n int) *Config {
	c.Allocator = memstream.HeapAllocator{Limit: n}
	return c
}

func (c *Config) validate() error {
	switch {
	case c.Allocator == nil:
		return errors.InvalidArgument(errors.PhaseOpen, growableName, "nil allocator")
	case c.InitialCapacity < 1:
		return errors.New(errors.PhaseOpen, errors.KindInvalidArgument).
			Stream(growableName).
			Value(c.InitialCapacity).
			Detail("initial capacity %d leaves no room for the terminator", c.InitialCapacity).
			Build()
	case c.GrowthFactor < 1:
		return errors.New(errors.PhaseOpen, errors.KindInvalidArgument).
			Stream(growableName).
			Value(c.GrowthFactor).
			Detail("growth factor %d must be at least 1", c.GrowthFactor).
			Build()
	}
	return nil
}

// OpenGrowable opens a growable stream that publishes into a new Buffer.
// The Buffer outlives the stream: after Close it still holds the content.
func (c *Config) OpenGrowable() (*stream.Stream, *Buffer, error) {
	out := &Buffer{}
	g, err := NewGrowable(out, c)
	if err != nil {
		return nil, nil, err
	}
	s, err := stream.Bind(g)
	if err != nil {
		return nil, nil, err
	}
	return s, out, nil
}

// OpenGrowableCells opens a growable stream that keeps *bufp and *sizep
// pointing at the current allocation and logical length.
func (c *Config) OpenGrowableCells(bufp *[]byte, sizep *int) (*stream.Stream, error) {
	if bufp == nil || sizep == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, growableName, "nil out-parameter")
	}
	g, err := NewGrowable(Cells{Buf: bufp, Len: sizep}, c)
	if err != nil {
		return nil, err
	}
	return stream.Bind(g)
}
