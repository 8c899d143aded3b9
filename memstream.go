package memstream

import (
	"fmt"
)

// Allocator owns the backing memory of growable streams.
type Allocator interface {
	// Realloc returns a buffer of exactly size bytes. The first len(old)
	// bytes hold the contents of old and the rest is zero. On error the
	// old buffer is untouched and still valid.
	Realloc(old []byte, size int) ([]byte, error)
}

// Publisher receives the backing buffer and logical length of a growable
// stream on every write. The bytes land once Publish returns nil; an error
// rejects the write.
type Publisher interface {
	Publish(buf []byte, length int) error
}

// HeapAllocator allocates on the Go heap. A non-zero Limit caps the size
// of any single buffer it hands out.
type HeapAllocator struct {
	Limit int
}

// ErrLimitExceeded is returned by HeapAllocator when a request is over Limit.
type ErrLimitExceeded struct {
	Size  int
	Limit int
}

func (e *ErrLimitExceeded) Error() string {
	return fmt.Sprintf("allocation of %d bytes exceeds limit %d", e.Size, e.Limit)
}

// Realloc implements Allocator.
func (a HeapAllocator) Realloc(old []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative allocation size %d", size)
	}
	if a.Limit > 0 && size > a.Limit {
		return nil, &ErrLimitExceeded{Size: size, Limit: a.Limit}
	}
	buf := make([]byte, size)
	copy(buf, old)
	return buf, nil
}
