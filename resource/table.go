package resource

import (
	"sync"
)

// Table maps handles to values. Each entry carries a tag chosen by the
// caller; RemoveTagged drops every entry with a given tag at once.
type Table struct {
	mu        sync.RWMutex
	entries   []entry
	freeList  []int
	observers []Observer
	live      int
	limit     int
	closed    bool
}

type entry struct {
	value any
	tag   uint32
	gen   uint32
	valid bool
}

// NewTable creates an unbounded table.
func NewTable() *Table {
	return NewTableWithLimit(0)
}

// NewTableWithLimit creates a table holding at most limit live entries.
// A limit of 0 means unbounded.
func NewTableWithLimit(limit int) *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]int, 0, 16),
		limit:    limit,
	}
}

// Insert stores value under tag and returns its handle.
// It returns 0 when the table is closed or full.
func (t *Table) Insert(tag uint32, value any) Handle {
	t.mu.Lock()
	h := t.insertLocked(tag, value)
	obs := t.observers
	t.mu.Unlock()

	if h != 0 {
		notify(obs, Event{Type: EventCreated, Handle: h, Tag: tag, Value: value})
	}
	return h
}

func (t *Table) insertLocked(tag uint32, value any) Handle {
	if t.closed || (t.limit > 0 && t.live >= t.limit) {
		return 0
	}
	t.live++

	if n := len(t.freeList); n > 0 {
		slot := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		e := &t.entries[slot]
		e.gen = (e.gen + 1) & maxGeneration
		if e.gen == 0 {
			e.gen = 1
		}
		e.tag = tag
		e.value = value
		e.valid = true
		return makeHandle(slot, e.gen)
	}

	t.entries = append(t.entries, entry{tag: tag, value: value, gen: 1, valid: true})
	return makeHandle(len(t.entries)-1, 1)
}

func (t *Table) lookup(h Handle) (*entry, bool) {
	if h == 0 {
		return nil, false
	}
	slot := h.slot()
	if slot < 0 || slot >= len(t.entries) {
		return nil, false
	}
	e := &t.entries[slot]
	if !e.valid || e.gen != h.generation() {
		return nil, false
	}
	return e, true
}

// Get returns the value stored under h.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(h)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Tag returns the tag of h.
func (t *Table) Tag(h Handle) (uint32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.lookup(h)
	if !ok {
		return 0, false
	}
	return e.tag, true
}

// Remove drops h and returns its value. A handle never resolves again once
// removed, even after its slot is reused.
func (t *Table) Remove(h Handle) (any, bool) {
	t.mu.Lock()
	e, ok := t.lookup(h)
	if !ok {
		t.mu.Unlock()
		return nil, false
	}
	ev := t.dropLocked(h, e)
	obs := t.observers
	t.mu.Unlock()

	notify(obs, ev)
	return ev.Value, true
}

func (t *Table) dropLocked(h Handle, e *entry) Event {
	ev := Event{Type: EventDropped, Handle: h, Tag: e.tag, Value: e.value}
	e.valid = false
	e.value = nil
	t.live--
	t.freeList = append(t.freeList, h.slot())
	return ev
}

// RemoveTagged drops every entry carrying tag and returns the count.
func (t *Table) RemoveTagged(tag uint32) int {
	t.mu.Lock()
	var events []Event
	for i := range t.entries {
		e := &t.entries[i]
		if e.valid && e.tag == tag {
			events = append(events, t.dropLocked(makeHandle(i, e.gen), e))
		}
	}
	obs := t.observers
	t.mu.Unlock()

	for _, ev := range events {
		notify(obs, ev)
	}
	return len(events)
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers[:len(t.observers):len(t.observers)], o)
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Close drops every entry without notifying observers and refuses further
// inserts. Handles issued earlier stop resolving.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	t.live = 0
	return nil
}

func notify(obs []Observer, e Event) {
	for _, o := range obs {
		o.OnResourceEvent(e)
	}
}
