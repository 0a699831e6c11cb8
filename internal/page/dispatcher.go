package page

import (
	"slices"
	"sync"
)

// Event names an interaction on the page.
type Event string

// Button click events.
const (
	EventPrevPage Event = "click:" + PrevButtonID
	EventNextPage Event = "click:" + NextButtonID
)

// Handler reacts to an Event.
type Handler func()

// Dispatcher routes named events to registered handlers one at a time.
// Handlers must not dispatch events themselves.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Event][]Handler

	running sync.Mutex
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Event][]Handler)}
}

// On registers h for event.
func (d *Dispatcher) On(event Event, h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = append(d.handlers[event], h)
}

// Dispatch runs the handlers for event in registration order and reports
// whether any ran.
func (d *Dispatcher) Dispatch(event Event) bool {
	d.mu.RLock()
	handlers := slices.Clone(d.handlers[event])
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return false
	}

	d.running.Lock()
	defer d.running.Unlock()
	for _, h := range handlers {
		h()
	}
	return true
}

// HandlerCount returns how many handlers are registered for event.
func (d *Dispatcher) HandlerCount(event Event) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[event])
}
