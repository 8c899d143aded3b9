// Package memstream provides in-memory byte streams with a uniform
// read/write/seek/close surface.
//
// A memory region, either caller-supplied with a fixed capacity or owned by
// the engine and grown on demand, is exposed as an ordinary stream. Callers
// open a stream once and afterwards talk to it only through the generic
// operations.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	memstream/        Root package with the Allocator and Publisher interfaces
//	├── stream/       Dispatcher binding read/write/seek/close slots to state
//	├── memory/       Fixed-capacity and growable memory streams
//	├── resource/     Generational handle table
//	├── streams/      Handle-addressed stream host
//	├── guest/        Streams over WebAssembly linear memory (wazero)
//	├── clocks/       UTC calendar to epoch conversion
//	├── errors/       Structured error types
//	└── cmd/memstream Command-line and interactive front end
//
// # Quick Start
//
// Write into a caller-owned buffer:
//
//	buf := make([]byte, 64)
//	s, err := memory.OpenFixed(buf, len(buf), "w+")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	n, _ := s.Write([]byte("hello")) // n == 5
//
// Let the engine own and grow the buffer:
//
//	s, out, err := memory.OpenGrowable()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Fprintf(s, "%d bytes", 300)
//	s.Close()
//	fmt.Println(out.String()) // out keeps the buffer after Close
//
// # Partial Writes
//
// Fixed streams never grow. A write that does not fit is truncated to the
// remaining capacity and reports the shorter count without an error. Use
// stream.WriteAll when every byte must land.
//
// Growable streams never truncate: a write either lands completely or fails
// with an out-of-memory error and leaves the stream unchanged.
//
// # Thread Safety
//
// Streams are NOT thread-safe. Each stream is meant to be used by a single
// goroutine, or access must be synchronized by the caller around the whole
// read/write/seek/close sequence.
package memstream
