package resource

// Handle is an opaque reference to a value in a Table. The low 32 bits hold
// the slot index plus one, the high 32 bits the slot's generation.
// Handle 0 is reserved and always invalid.
type Handle uint64

func makeHandle(index int, gen uint32) Handle {
	return Handle(gen)<<32 | Handle(uint32(index+1))
}

// index returns the slot index, or -1 for handle 0.
func (h Handle) index() int {
	return int(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	}
	return "unknown"
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}
