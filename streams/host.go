package streams

import (
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/memory"
	"github.com/wippyai/memstream/resource"
	"github.com/wippyai/memstream/stream"
)

// Host addresses streams by handle. Handles are generational, so one
// closed by Close never resolves again, even after its slot is reused.
type Host struct {
	streams *resource.Table[*stream.Stream]
}

// NewHost creates a host with an empty handle table.
func NewHost() *Host {
	return &Host{streams: resource.NewTable[*stream.Stream]()}
}

// Table exposes the handle table, mainly for observers.
func (h *Host) Table() *resource.Table[*stream.Stream] {
	return h.streams
}

// Adopt registers an already open stream, such as one created with
// stream.Open or the guest package, and returns its handle. The host owns
// the stream from then on.
func (h *Host) Adopt(s *stream.Stream) (resource.Handle, error) {
	if s == nil || s.Closed() {
		return 0, errors.InvalidArgument(errors.PhaseOpen, "", "stream is nil or closed")
	}
	handle := h.streams.Insert(s)
	if handle == 0 {
		return 0, errors.New(errors.PhaseOpen, errors.KindUseAfterClose).
			Detail("host is shut down").
			Build()
	}
	Logger().Debug("stream adopted", zap.Uint64("handle", uint64(handle)))
	return handle, nil
}

// OpenFixed opens a fixed stream over all of buf.
func (h *Host) OpenFixed(buf []byte, mode string) (resource.Handle, error) {
	s, err := memory.OpenFixed(buf, len(buf), mode)
	if err != nil {
		return 0, err
	}
	return h.adopt(s)
}

// OpenGrowable opens a growable stream. A nil cfg uses the defaults. The
// returned Buffer follows the stream's content and stays valid after Close.
func (h *Host) OpenGrowable(cfg *memory.Config) (resource.Handle, *memory.Buffer, error) {
	if cfg == nil {
		cfg = memory.NewConfig()
	}
	s, out, err := cfg.OpenGrowable()
	if err != nil {
		return 0, nil, err
	}
	handle, err := h.adopt(s)
	if err != nil {
		return 0, nil, err
	}
	return handle, out, nil
}

// adopt is Adopt for streams the host opened itself; they are closed again
// if the table refuses them.
func (h *Host) adopt(s *stream.Stream) (resource.Handle, error) {
	handle, err := h.Adopt(s)
	if err != nil {
		_ = s.Close()
		return 0, err
	}
	return handle, nil
}

// maxRead bounds the buffer a single Read allocates, whatever size the
// caller asks for.
const maxRead = 64 << 10

// Read reads up to size bytes, at most maxRead per call. It returns io.EOF
// with no data at the end of the stream.
func (h *Host) Read(handle resource.Handle, size int) ([]byte, error) {
	s, err := h.lookup(handle, errors.PhaseRead)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errors.InvalidArgument(errors.PhaseRead, "", "negative read size")
	}
	buf := make([]byte, min(size, maxRead))
	n, err := s.Read(buf)
	if err != nil && (n == 0 || err != io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

// Write writes data and returns the count accepted. A short count with a
// nil error is a partial write into a full fixed stream.
func (h *Host) Write(handle resource.Handle, data []byte) (int, error) {
	s, err := h.lookup(handle, errors.PhaseWrite)
	if err != nil {
		return 0, err
	}
	return s.Write(data)
}

// Seek moves the stream position.
func (h *Host) Seek(handle resource.Handle, offset int64, whence int) (int64, error) {
	s, err := h.lookup(handle, errors.PhaseSeek)
	if err != nil {
		return 0, err
	}
	return s.Seek(offset, whence)
}

// Close closes the stream and invalidates its handle.
func (h *Host) Close(handle resource.Handle) error {
	s, ok := h.streams.Remove(handle)
	if !ok {
		return errors.New(errors.PhaseClose, errors.KindUseAfterClose).
			Value(uint64(handle)).
			Detail("unknown stream handle %#x", uint64(handle)).
			Build()
	}
	Logger().Debug("stream closed", zap.Uint64("handle", uint64(handle)))
	return s.Close()
}

// Len returns the number of open streams.
func (h *Host) Len() int {
	return h.streams.Len()
}

// Shutdown closes every open stream and refuses new ones.
func (h *Host) Shutdown() error {
	n := h.streams.Len()
	err := h.streams.Close()
	Logger().Debug("host shut down", zap.Int("closed", n), zap.Error(err))
	return err
}

func (h *Host) lookup(handle resource.Handle, phase errors.Phase) (*stream.Stream, error) {
	s, ok := h.streams.Get(handle)
	if !ok {
		return nil, errors.New(phase, errors.KindUseAfterClose).
			Value(uint64(handle)).
			Detail("unknown stream handle %#x", uint64(handle)).
			Build()
	}
	return s, nil
}
