package testgpu

import (
	"runtime"
	"sync/atomic"

	"github.com/gogpu/rendergraph/hal"
)

// Event is an in-process TimelineEvent: Signal/Wait are both synchronous
// since there is no real GPU timeline to race against.
type Event struct {
	value atomic.Uint64
}

// NewEvent creates an event starting at value 0.
func NewEvent() *Event { return &Event{} }

func (e *Event) Signal(value uint64) { e.value.Store(value) }
func (e *Event) Wait(value uint64) {
	for e.value.Load() < value {
		runtime.Gosched()
	}
}
func (e *Event) Value() uint64 { return e.value.Load() }

// EventSet vends one Event per queue slot, creating it lazily.
type EventSet struct {
	events map[int]*Event
}

// NewEventSet creates an empty set.
func NewEventSet() *EventSet { return &EventSet{events: make(map[int]*Event)} }

// SyncEvent implements hal.EventSource. Every queue slot is in this
// backend's domain, so it always returns true.
func (s *EventSet) SyncEvent(queueSlot int) (hal.TimelineEvent, bool) {
	e, ok := s.events[queueSlot]
	if !ok {
		e = NewEvent()
		s.events[queueSlot] = e
	}
	return e, true
}
