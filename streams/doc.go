// Package streams serves memory streams by handle.
//
// A Host keeps open streams in a generational handle table and forwards
// Read, Write, Seek and Close calls addressed by handle:
//
//	host := streams.NewHost()
//	h, _ := host.OpenFixed(make([]byte, 64), "w")
//	host.Write(h, []byte("hello"))
//	host.Seek(h, 0, io.SeekStart)
//	data, _ := host.Read(h, 5)
//	host.Close(h)
//
// Unknown, closed or stale handles fail with a use-after-close error and
// never reach another stream.
package streams
