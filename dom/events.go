package dom

import "sync"

// Event types dispatched by Window.
const (
	EventMouseEnter = "mouseenter"
	EventMouseLeave = "mouseleave"
	EventMouseDown  = "mousedown"
	EventMouseMove  = "mousemove"
	EventMouseUp    = "mouseup"
	EventScroll     = "scroll"
	EventResize     = "resize"
)

// Event is a dispatched DOM event.
type Event struct {
	Type    string
	Bubbles bool

	// Target is the element the event was dispatched at, or nil for
	// window-level events.
	Target *Element

	// Pointer position in viewport coordinates.
	ClientX, ClientY float64

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles a dispatched event.
type Listener func(*Event)

// ListenerID identifies a registration for removal.
type ListenerID uint64

type registeredListener struct {
	id      ListenerID
	fn      Listener
	removed bool
}

// EventTarget holds per-type listener lists.
type EventTarget struct {
	mu        sync.RWMutex
	listeners map[string][]*registeredListener
	nextID    ListenerID
}

// NewEventTarget creates an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{listeners: make(map[string][]*registeredListener)}
}

// AddEventListener registers fn for eventType and returns its id.
func (et *EventTarget) AddEventListener(eventType string, fn Listener) ListenerID {
	et.mu.Lock()
	defer et.mu.Unlock()
	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], &registeredListener{id: et.nextID, fn: fn})
	return et.nextID
}

// RemoveEventListener unregisters a listener. A listener removed while an
// event is being dispatched is not invoked for the rest of that dispatch.
func (et *EventTarget) RemoveEventListener(eventType string, id ListenerID) bool {
	et.mu.Lock()
	defer et.mu.Unlock()
	list := et.listeners[eventType]
	for i, l := range list {
		if l.id == id {
			l.removed = true
			et.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners for eventType.
func (et *EventTarget) ListenerCount(eventType string) int {
	et.mu.RLock()
	defer et.mu.RUnlock()
	return len(et.listeners[eventType])
}

// DispatchEvent invokes the listeners registered for ev.Type in
// registration order. Listeners may add or remove listeners.
func (et *EventTarget) DispatchEvent(ev *Event) {
	et.mu.RLock()
	list := make([]*registeredListener, len(et.listeners[ev.Type]))
	copy(list, et.listeners[ev.Type])
	et.mu.RUnlock()

	for _, l := range list {
		et.mu.RLock()
		removed := l.removed
		et.mu.RUnlock()
		if !removed {
			l.fn(ev)
		}
	}
}
