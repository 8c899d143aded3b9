package memory

import (
	"io"
	"math"
)

// region is the position and bounds bookkeeping shared by the fixed and
// growable streams. end is the furthest valid byte: the high-water mark of
// a fixed stream, the logical length of a growable one.
type region struct {
	buf []byte
	pos int
	end int
}

// read copies bytes in [pos, end) into p and advances pos.
func (r *region) read(p []byte) int {
	if r.pos >= r.end {
		return 0
	}
	n := copy(p, r.buf[r.pos:r.end])
	r.pos += n
	return n
}

// write copies as much of p as fits in [pos, limit), advances pos and
// raises end when it was passed.
func (r *region) write(p []byte, limit int) int {
	if r.pos >= limit {
		return 0
	}
	n := copy(r.buf[r.pos:limit], p)
	r.pos += n
	if r.pos > r.end {
		r.end = r.pos
	}
	return n
}

// target resolves a seek to an absolute position in [0, limit]. io.SeekEnd
// is relative to end.
func (r *region) target(offset int64, whence int, limit int) (int, bool) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(r.pos)
	case io.SeekEnd:
		base = int64(r.end)
	default:
		return 0, false
	}
	if offset > 0 && base > math.MaxInt64-offset {
		return 0, false
	}
	next := base + offset
	if next < 0 || next > int64(limit) {
		return 0, false
	}
	return int(next), true
}
