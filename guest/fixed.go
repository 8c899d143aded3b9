package guest

import (
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/memory"
	"github.com/wippyai/memstream/stream"
)

const guestName = "guest"

// OpenFixed opens a fixed stream over size bytes of guest memory starting
// at offset. Reads and writes go straight to guest memory.
func OpenFixed(mem api.Memory, offset, size uint32, mode string) (*stream.Stream, error) {
	view, err := region(mem, offset, size)
	if err != nil {
		return nil, err
	}
	Logger().Debug("guest fixed stream",
		zap.Uint32("offset", offset),
		zap.Uint32("size", size),
		zap.String("mode", mode))
	return memory.OpenFixed(view, len(view), mode)
}

// Published returns the content a growable guest stream last published
// into bufCell and sizeCell.
func Published(mem api.Memory, bufCell, sizeCell uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.InvalidArgument(errors.PhaseRead, guestName, "nil memory")
	}
	ptr, ok := mem.ReadUint32Le(bufCell)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRead, uint64(bufCell), 4, uint64(mem.Size()))
	}
	size, ok := mem.ReadUint32Le(sizeCell)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRead, uint64(sizeCell), 4, uint64(mem.Size()))
	}
	data, ok := mem.Read(ptr, size)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRead, uint64(ptr), uint64(size), uint64(mem.Size()))
	}
	return data, nil
}

// region returns a write-through view of [offset, offset+size).
func region(mem api.Memory, offset, size uint32) ([]byte, error) {
	if mem == nil {
		return nil, errors.InvalidArgument(errors.PhaseOpen, guestName, "nil memory")
	}
	view, ok := mem.Read(offset, size)
	if !ok {
		return nil, errors.New(errors.PhaseOpen, errors.KindInvalidArgument).
			Stream(guestName).
			Value(offset).
			Detail("region [%d, %d) outside guest memory of %d bytes", offset, uint64(offset)+uint64(size), mem.Size()).
			Build()
	}
	return view, nil
}
