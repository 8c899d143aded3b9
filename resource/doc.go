// Package resource provides a generational handle table.
//
// Handles are opaque integers that address values held by the host. The
// stream host uses a Table to hand out stream handles that can be passed
// around as plain numbers.
//
// # Handle Table
//
//	table := resource.NewTable[*stream.Stream]()
//
//	// Insert a value, get a handle
//	h := table.Insert(s)
//
//	// Retrieve value by handle
//	s, ok := table.Get(h)
//
//	// Remove and take the value back
//	s, ok := table.Remove(h)
//
// # Generations
//
// Removed slots go on a free list and are reused by later inserts. Each
// slot carries a generation counter that is bumped on removal and encoded
// in the handle, so a handle that outlived its value never resolves to
// whatever took the slot next.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(obs) // obs.OnResourceEvent(resource.Event)
//
// EventCreated fires on Insert and EventDropped on Remove and Close.
//
// # Closing
//
// Values are not closed on Remove. Table.Close closes every remaining
// value that implements io.Closer and refuses further inserts.
package resource
