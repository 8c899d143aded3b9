package resource

import (
	"errors"
	"io"
	"sync"
)

// Table maps generational handles to values of type T. Removed slots are
// reused, but every reuse bumps the slot's generation so handles issued
// for the previous occupant stay invalid.
type Table[T any] struct {
	entries   []entry[T]
	freeList  []int
	live      int
	closed    bool
	mu        sync.RWMutex
	observers []Observer
	obsMu     sync.RWMutex
}

type entry[T any] struct {
	value T
	gen   uint32
	valid bool
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		entries:  make([]entry[T], 0, 16),
		freeList: make([]int, 0, 8),
	}
}

// Insert adds a value and returns its handle. It returns 0 once the table
// is closed.
func (t *Table[T]) Insert(value T) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}

	var idx int
	if n := len(t.freeList); n > 0 {
		idx = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
	} else {
		t.entries = append(t.entries, entry[T]{})
		idx = len(t.entries) - 1
	}
	e := &t.entries[idx]
	e.value = value
	e.valid = true
	t.live++
	h := makeHandle(idx, e.gen)
	t.mu.Unlock()

	t.notify(Event{Type: EventCreated, Handle: h, Value: value})
	return h
}

// lookup returns the live entry for h. The caller holds mu.
func (t *Table[T]) lookup(h Handle) *entry[T] {
	idx := h.index()
	if idx < 0 || idx >= len(t.entries) {
		return nil
	}
	e := &t.entries[idx]
	if !e.valid || e.gen != h.generation() {
		return nil
	}
	return e
}

// Get retrieves a value by handle.
func (t *Table[T]) Get(h Handle) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if e := t.lookup(h); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Remove drops a value and returns (value, true) if the handle was live.
// The value is handed back as is; closing it is up to the caller.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T

	t.mu.Lock()
	e := t.lookup(h)
	if e == nil {
		t.mu.Unlock()
		return zero, false
	}
	value := e.value
	e.value = zero
	e.valid = false
	e.gen++
	t.freeList = append(t.freeList, h.index())
	t.live--
	t.mu.Unlock()

	t.notify(Event{Type: EventDropped, Handle: h, Value: value})
	return value, true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each calls fn for every live value in slot order until fn returns false.
// fn must not call back into the table.
func (t *Table[T]) Each(fn func(Handle, T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.entries {
		e := &t.entries[i]
		if !e.valid {
			continue
		}
		if !fn(makeHandle(i, e.gen), e.value) {
			return
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[T]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close drops every remaining value, closing those that implement
// io.Closer, and rejects further inserts. Close errors are joined.
// Closing a closed table is a no-op.
func (t *Table[T]) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	type dropped struct {
		h     Handle
		value T
	}
	var drops []dropped
	for i := range t.entries {
		e := &t.entries[i]
		if e.valid {
			drops = append(drops, dropped{makeHandle(i, e.gen), e.value})
		}
	}
	t.entries = nil
	t.freeList = nil
	t.live = 0
	t.mu.Unlock()

	var errs []error
	for _, d := range drops {
		if c, ok := any(d.value).(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		t.notify(Event{Type: EventDropped, Handle: d.h, Value: d.value})
	}
	return errors.Join(errs...)
}

func (t *Table[T]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
