// Package memory implements fixed-capacity and growable memory streams.
//
// # Fixed streams
//
// A Fixed stream reads and writes a caller-owned buffer without ever
// reallocating it. Writes past capacity are truncated and report the short
// count with a nil error:
//
//	buf := make([]byte, 64)
//	s, _ := memory.OpenFixed(buf, 64, "w")
//	s.Write([]byte("hello"))       // 5, nil
//	s.Write(make([]byte, 60))      // 59, nil: capacity exhausted
//
// Mode letters: r (read), w (read and write, truncate), a (write-only,
// starting at the high-water mark), + (read and write), b (ignored).
//
// # Growable streams
//
// A Growable stream owns its buffer through a memstream.Allocator and grows
// it to (position+len+1)*2 whenever a write would reach capacity. After
// each write the buffer and logical length are published, with a zero byte
// right after the content:
//
//	s, out, _ := memory.OpenGrowable()
//	s.Write(bytes.Repeat([]byte("x"), 300))
//	out.Len()               // 300
//	len(out.Allocation())   // 602
//
// A write that cannot be satisfied fails as a whole with an out-of-memory
// error; nothing is truncated.
//
// Closing either stream releases only the stream's bookkeeping. Fixed
// buffers belong to the caller from the start; growable buffers belong to
// the caller through the Buffer or Cells it was opened with.
package memory
