package guest

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/memory"
	"github.com/wippyai/memstream/stream"
)

// cells publishes a growable stream into two u32 cells of guest memory:
// the buffer's guest pointer and its logical length.
type cells struct {
	mem      api.Memory
	alloc    *Realloc
	bufCell  uint32
	sizeCell uint32
}

// Publish implements memstream.Publisher.
func (c *cells) Publish(_ []byte, length int) error {
	if !c.mem.WriteUint32Le(c.bufCell, c.alloc.Ptr()) {
		return errors.OutOfBounds(errors.PhaseWrite, uint64(c.bufCell), 4, uint64(c.mem.Size()))
	}
	if !c.mem.WriteUint32Le(c.sizeCell, uint32(length)) {
		return errors.OutOfBounds(errors.PhaseWrite, uint64(c.sizeCell), 4, uint64(c.mem.Size()))
	}
	return nil
}

// OpenGrowable opens a growable stream whose buffer is allocated in guest
// memory through fn (cabi_realloc). After every write the buffer's guest
// pointer is stored at bufCell and its length at sizeCell, both as u32
// little-endian. A nil cfg uses memory.NewConfig(); its allocator is
// replaced by the guest one.
func OpenGrowable(ctx context.Context, mem api.Memory, fn api.Function, bufCell, sizeCell uint32, cfg *memory.Config) (*stream.Stream, error) {
	if _, err := region(mem, bufCell, 4); err != nil {
		return nil, err
	}
	if _, err := region(mem, sizeCell, 4); err != nil {
		return nil, err
	}
	alloc, err := NewRealloc(ctx, mem, fn)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = memory.NewConfig()
	}
	guestCfg := *cfg
	guestCfg.Allocator = alloc

	g, err := memory.NewGrowable(&cells{mem: mem, alloc: alloc, bufCell: bufCell, sizeCell: sizeCell}, &guestCfg)
	if err != nil {
		return nil, err
	}
	Logger().Debug("guest growable stream",
		zap.Uint32("ptr", alloc.Ptr()),
		zap.Uint32("buf_cell", bufCell),
		zap.Uint32("size_cell", sizeCell))
	return stream.Bind(g)
}
