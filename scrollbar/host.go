package scrollbar

// Pointer event types the controller subscribes to.
const (
	EventPointerEnter = "mouseenter"
	EventPointerLeave = "mouseleave"
	EventPointerDown  = "mousedown"
	EventPointerMove  = "mousemove"
	EventPointerUp    = "mouseup"
)

// PointerEvent carries the pointer position in viewport coordinates.
type PointerEvent struct {
	X, Y float64
}

// Element is a styleable host element.
type Element interface {
	// SetStyle sets an inline style property. An empty value removes it.
	SetStyle(property, value string)
	// Style returns an inline style property, or "" when unset.
	Style(property string) string
	// SetAttribute sets an attribute.
	SetAttribute(name, value string)
}

// EventSource delivers pointer events of a given type.
type EventSource interface {
	// Listen subscribes fn to events of eventType. Calling the returned
	// function removes the subscription.
	Listen(eventType string, fn func(PointerEvent)) (cancel func())
}

// Target is an element that also emits pointer events, such as the
// scrollbar container.
type Target interface {
	Element
	EventSource
}

// Viewport is the host scrolling surface.
type Viewport interface {
	// Extent is the visible size along d.
	Extent(d Direction) float64
	// ContentExtent is the full scrollable size along d.
	ContentExtent(d Direction) float64
	// ScrollOffset is the current scroll position along d.
	ScrollOffset(d Direction) float64
	// ScrollTo scrolls natively to the given offsets.
	ScrollTo(x, y float64)
}

// Host is everything the controller needs from its environment besides
// the two elements it owns.
type Host interface {
	Viewport

	// Window is the widest pointer event scope. Moves and releases are
	// taken from here so that a drag survives the pointer leaving the
	// container.
	Window() EventSource

	// Body receives the cursor and user-select overrides during a drag.
	Body() Element

	// TouchCapable reports whether the host has touch input.
	TouchCapable() bool
}

// ScrollDelegate performs scrolling on the controller's behalf, typically
// a smooth-scrolling engine.
type ScrollDelegate interface {
	ScrollTo(offset float64)
}

// ScrollFunc adapts a function to ScrollDelegate.
type ScrollFunc func(offset float64)

// ScrollTo calls f(offset).
func (f ScrollFunc) ScrollTo(offset float64) { f(offset) }
