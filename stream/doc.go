// Package stream implements the dispatcher behind every memstream stream.
//
// A Stream binds four operation slots (read, write, seek, close) and one
// opaque state value. Every call on the Stream is forwarded, unmodified, to
// the bound slot together with the state.
//
// Bind derives the slots from the interfaces the state implements:
//
//	s, err := stream.Bind(fixed) // fixed implements Read/Write/Seek/Close
//
// Open takes explicit slots and a cookie, for callers that keep their state
// outside a Go type:
//
//	s, err := stream.Open(cookie, stream.Funcs{
//	    Read:  readFn,
//	    Close: closeFn,
//	})
//
// Calling an operation whose slot is unbound fails with an unsupported
// error. Close runs the close slot exactly once; everything after it fails
// with a use-after-close error.
package stream
