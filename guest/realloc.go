package guest

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/memstream/errors"
)

// Realloc adapts a guest cabi_realloc export to memstream.Allocator. It
// tracks the guest pointer of the buffer it last returned, so the slices it
// hands out are views of guest memory.
type Realloc struct {
	ctx   context.Context
	mem   api.Memory
	fn    api.Function
	ptr   uint32
	align uint32
}

// NewRealloc wraps fn, which must have the cabi_realloc signature
// (old_ptr, old_size, align, new_size) -> ptr.
func NewRealloc(ctx context.Context, mem api.Memory, fn api.Function) (*Realloc, error) {
	if mem == nil || fn == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, guestName, "nil memory or realloc function")
	}
	return &Realloc{ctx: ctx, mem: mem, fn: fn, align: 1}, nil
}

// Ptr returns the guest address of the current buffer, 0 before the first
// allocation.
func (r *Realloc) Ptr() uint32 { return r.ptr }

// Realloc implements memstream.Allocator. old must be the slice returned
// by the previous call, or nil.
func (r *Realloc) Realloc(old []byte, size int) ([]byte, error) {
	if size < 0 || uint64(size) > math.MaxUint32 {
		return nil, fmt.Errorf("guest allocation of %d bytes out of range", size)
	}
	oldPtr := r.ptr
	oldSize := uint32(len(old))
	if old == nil {
		oldPtr, oldSize = 0, 0
	}

	results, err := r.fn.Call(r.ctx, uint64(oldPtr), uint64(oldSize), uint64(r.align), uint64(size))
	if err != nil {
		return nil, fmt.Errorf("cabi_realloc failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("cabi_realloc returned no result")
	}
	ptr := uint32(results[0])
	if ptr == 0 && size > 0 {
		return nil, fmt.Errorf("cabi_realloc returned null for %d bytes", size)
	}

	// Guest memory may have grown during the call, so the view is taken
	// only now.
	buf, ok := r.mem.Read(ptr, uint32(size))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseGrow, uint64(ptr), uint64(size), uint64(r.mem.Size()))
	}
	if int(oldSize) < len(buf) {
		clear(buf[oldSize:])
	}
	r.ptr = ptr

	Logger().Debug("guest realloc",
		zap.Uint32("old_ptr", oldPtr),
		zap.Uint32("old_size", oldSize),
		zap.Uint32("ptr", ptr),
		zap.Int("size", size))
	return buf, nil
}
