package resource

// Handle names one entry of a Table.
// The low 32 bits hold the slot index plus one, the high 32 bits hold the
// slot generation. Handle 0 is reserved and always invalid.
// Generations wrap below 2^31, so the top bit of a handle is always clear
// and free for callers to use as a tag.
type Handle uint64

const maxGeneration = 1<<31 - 1

func makeHandle(slot int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot+1))
}

func (h Handle) slot() int {
	return int(uint32(h)) - 1
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

// EventType says what happened to an entry.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	}
	return "unknown"
}

// Event is delivered to observers after an entry is created or dropped.
type Event struct {
	Value  any
	Handle Handle
	Tag    uint32
	Type   EventType
}

// Observer receives entry lifecycle events. Observers run with no table
// lock held and may read the table, but must not insert or remove.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) {
	f(e)
}
