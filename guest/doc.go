// Package guest opens memory streams over WebAssembly linear memory.
//
// Fixed streams view a region of an instantiated module's memory:
//
//	mem := mod.ExportedMemory("memory")
//	s, err := guest.OpenFixed(mem, 1024, 256, "w")
//
// Growable streams allocate through the module's cabi_realloc export and
// publish the buffer pointer and length into two u32 cells of guest memory
// after every write, so guest code can follow the content:
//
//	realloc := mod.ExportedFunction("cabi_realloc")
//	s, err := guest.OpenGrowable(ctx, mem, realloc, 0, 4, nil)
//	s.Write(data)
//	content, _ := guest.Published(mem, 0, 4)
//
// Stream buffers are views into guest memory. A memory.grow performed by
// the guest outside the stream's own allocator invalidates them; do not
// keep a guest stream open across such calls.
package guest
