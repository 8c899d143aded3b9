package guest

import (
	"bytes"
	"context"
	goerrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/memstream/errors"
	"github.com/wippyai/memstream/memory"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func newMemory(t *testing.T) api.Memory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod.ExportedMemory("memory")
}

// bumpRealloc stands in for a guest cabi_realloc: it never frees, copies
// the old block forward and refuses requests past limit.
type bumpRealloc struct {
	api.Function
	mem   api.Memory
	next  uint32
	limit uint32
	calls int
}

func (b *bumpRealloc) Call(_ context.Context, params ...uint64) ([]uint64, error) {
	b.calls++
	oldPtr, oldSize, newSize := uint32(params[0]), uint32(params[1]), uint32(params[3])
	if b.next+newSize > b.limit {
		return nil, goerrors.New("guest out of memory")
	}
	ptr := b.next
	b.next += newSize
	if oldSize > 0 {
		old, _ := b.mem.Read(oldPtr, oldSize)
		b.mem.Write(ptr, old)
	}
	// dirty the fresh tail so zero-filling is observable
	tail, _ := b.mem.Read(ptr+oldSize, newSize-oldSize)
	for i := range tail {
		tail[i] = 0xAA
	}
	return []uint64{uint64(ptr)}, nil
}

func TestOpenFixed_GuestRegion(t *testing.T) {
	mem := newMemory(t)

	s, err := OpenFixed(mem, 100, 16, "w")
	if err != nil {
		t.Fatalf("OpenFixed failed: %v", err)
	}
	n, err := s.Write([]byte("guest memory stream"))
	if err != nil || n != 16 {
		t.Fatalf("Write = %d, %v; want 16 (partial), nil", n, err)
	}

	got, ok := mem.Read(100, 16)
	if !ok || string(got) != "guest memory str" {
		t.Errorf("guest memory = %q", got)
	}
	if b, _ := mem.ReadByte(116); b != 0 {
		t.Error("write escaped the region")
	}

	_, _ = s.Seek(6, io.SeekStart)
	buf := make([]byte, 6)
	if n, _ := s.Read(buf); n != 6 || string(buf) != "memory" {
		t.Errorf("Read = %q", buf[:n])
	}
}

func TestOpenFixed_ReadsExistingContent(t *testing.T) {
	mem := newMemory(t)
	mem.Write(200, []byte("preloaded"))

	s, err := OpenFixed(mem, 200, 9, "r")
	if err != nil {
		t.Fatalf("OpenFixed failed: %v", err)
	}
	got, err := io.ReadAll(s)
	if err != nil || string(got) != "preloaded" {
		t.Errorf("ReadAll = %q, %v", got, err)
	}
}

func TestOpenFixed_OutOfRange(t *testing.T) {
	mem := newMemory(t)

	tests := []struct {
		name   string
		offset uint32
		size   uint32
	}{
		{"past end", mem.Size(), 1},
		{"straddles end", mem.Size() - 4, 8},
		{"huge", 0, 1 << 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenFixed(mem, tt.offset, tt.size, "w"); !goerrors.Is(err, errors.ErrInvalidArgument) {
				t.Errorf("expected invalid argument, got %v", err)
			}
		})
	}

	if _, err := OpenFixed(nil, 0, 1, "w"); !goerrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("nil memory: %v", err)
	}
}

func TestOpenGrowable_PublishesCells(t *testing.T) {
	ctx := context.Background()
	mem := newMemory(t)
	fn := &bumpRealloc{mem: mem, next: 1024, limit: mem.Size()}

	s, err := OpenGrowable(ctx, mem, fn, 0, 4, nil)
	if err != nil {
		t.Fatalf("OpenGrowable failed: %v", err)
	}

	if ptr, _ := mem.ReadUint32Le(0); ptr != 1024 {
		t.Errorf("initial pointer = %d, want 1024", ptr)
	}
	if size, _ := mem.ReadUint32Le(4); size != 0 {
		t.Errorf("initial size = %d, want 0", size)
	}
	initial, _ := mem.Read(1024, memory.DefaultInitialCapacity)
	if !bytes.Equal(initial, make([]byte, memory.DefaultInitialCapacity)) {
		t.Error("initial guest buffer not zero-filled")
	}

	want := strings.Repeat("x", 300)
	n, err := s.Write([]byte(want))
	if err != nil || n != 300 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if fn.calls != 2 {
		t.Errorf("realloc calls = %d, want 2", fn.calls)
	}

	ptr, _ := mem.ReadUint32Le(0)
	if ptr != 1024+memory.DefaultInitialCapacity {
		t.Errorf("pointer after growth = %d", ptr)
	}
	content, err := Published(mem, 0, 4)
	if err != nil {
		t.Fatalf("Published failed: %v", err)
	}
	if string(content) != want {
		t.Errorf("published content mismatch (%d bytes)", len(content))
	}
	if b, _ := mem.ReadByte(ptr + 300); b != 0 {
		t.Error("terminator missing in guest memory")
	}
}

func TestOpenGrowable_GuestRefusal(t *testing.T) {
	ctx := context.Background()
	mem := newMemory(t)
	fn := &bumpRealloc{mem: mem, next: 1024, limit: 1024 + 256}

	s, err := OpenGrowable(ctx, mem, fn, 8, 12, nil)
	if err != nil {
		t.Fatalf("OpenGrowable failed: %v", err)
	}
	_, _ = s.Write([]byte("abc"))

	n, err := s.Write(make([]byte, 400))
	if n != 0 || !goerrors.Is(err, errors.ErrOutOfMemory) {
		t.Fatalf("Write = %d, %v; want 0, out of memory", n, err)
	}
	content, _ := Published(mem, 8, 12)
	if string(content) != "abc" {
		t.Errorf("published content changed to %q", content)
	}
}

func TestOpenGrowable_InvalidArguments(t *testing.T) {
	ctx := context.Background()
	mem := newMemory(t)
	fn := &bumpRealloc{mem: mem, next: 1024, limit: mem.Size()}

	if _, err := OpenGrowable(ctx, mem, fn, mem.Size()-2, 4, nil); !goerrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("buffer cell out of range: %v", err)
	}
	if _, err := OpenGrowable(ctx, mem, fn, 0, mem.Size(), nil); !goerrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("size cell out of range: %v", err)
	}
	if _, err := OpenGrowable(ctx, mem, nil, 0, 4, nil); !goerrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("nil function: %v", err)
	}
	if fn.calls != 0 {
		t.Errorf("realloc called %d times on invalid open", fn.calls)
	}
}

func TestRealloc_ZeroFillsAndTracksPointer(t *testing.T) {
	ctx := context.Background()
	mem := newMemory(t)
	fn := &bumpRealloc{mem: mem, next: 512, limit: mem.Size()}

	r, err := NewRealloc(ctx, mem, fn)
	if err != nil {
		t.Fatalf("NewRealloc failed: %v", err)
	}
	buf, err := r.Realloc(nil, 8)
	if err != nil {
		t.Fatalf("Realloc failed: %v", err)
	}
	copy(buf, "12345678")

	grown, err := r.Realloc(buf, 16)
	if err != nil {
		t.Fatalf("Realloc failed: %v", err)
	}
	if r.Ptr() != 520 {
		t.Errorf("Ptr = %d, want 520", r.Ptr())
	}
	if string(grown[:8]) != "12345678" {
		t.Errorf("contents not carried: %q", grown[:8])
	}
	if !bytes.Equal(grown[8:], make([]byte, 8)) {
		t.Errorf("tail not zeroed: %v", grown[8:])
	}

	// the slice is a view: writes land in guest memory
	grown[0] = 'X'
	if b, _ := mem.ReadByte(520); b != 'X' {
		t.Error("realloc result is not a view of guest memory")
	}
}

func TestRealloc_GrowthTable(t *testing.T) {
	ctx := context.Background()
	mem := newMemory(t)

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"zero", 0, false},
		{"page", 4096, false},
		{"negative", -1, true},
		{"beyond memory", 1 << 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := &bumpRealloc{mem: mem, next: 64, limit: 1 << 30}
			r, _ := NewRealloc(ctx, mem, fn)
			_, err := r.Realloc(nil, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("Realloc(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
		})
	}
}
