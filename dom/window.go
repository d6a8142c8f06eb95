package dom

import (
	"math"
	"sync"
)

// Window is the top-level browsing context: a viewport over a document
// with a scroll position and pointer routing.
type Window struct {
	*EventTarget

	document *Document

	mu          sync.RWMutex
	innerWidth  float64
	innerHeight float64
	scrollX     float64
	scrollY     float64
	touch       bool
	hovered     []*Element // hovered chain, innermost first
}

// NewWindow creates a window of the given inner size showing doc.
func NewWindow(doc *Document, width, height float64) *Window {
	return &Window{
		EventTarget: NewEventTarget(),
		document:    doc,
		innerWidth:  width,
		innerHeight: height,
	}
}

// Document returns the displayed document.
func (w *Window) Document() *Document {
	return w.document
}

// InnerWidth returns the viewport width.
func (w *Window) InnerWidth() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.innerWidth
}

// InnerHeight returns the viewport height.
func (w *Window) InnerHeight() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.innerHeight
}

// ScrollX returns the horizontal scroll offset.
func (w *Window) ScrollX() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollX
}

// ScrollY returns the vertical scroll offset.
func (w *Window) ScrollY() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollY
}

// ScrollWidth returns the document's scrollable width, never less than
// the viewport.
func (w *Window) ScrollWidth() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollWidthLocked()
}

// ScrollHeight returns the document's scrollable height, never less than
// the viewport.
func (w *Window) ScrollHeight() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.scrollHeightLocked()
}

func (w *Window) scrollWidthLocked() float64 {
	if body := w.document.Body(); body != nil {
		return math.Max(body.ScrollWidth(), w.innerWidth)
	}
	return w.innerWidth
}

func (w *Window) scrollHeightLocked() float64 {
	if body := w.document.Body(); body != nil {
		return math.Max(body.ScrollHeight(), w.innerHeight)
	}
	return w.innerHeight
}

// ScrollTo scrolls to (x, y), clamped to the scrollable range, and
// dispatches "scroll" if the position changed.
func (w *Window) ScrollTo(x, y float64) {
	w.mu.Lock()
	changed := w.setScrollLocked(x, y)
	w.mu.Unlock()
	if changed {
		w.DispatchEvent(&Event{Type: EventScroll})
	}
}

// ScrollBy scrolls relative to the current position.
func (w *Window) ScrollBy(dx, dy float64) {
	w.mu.RLock()
	x, y := w.scrollX+dx, w.scrollY+dy
	w.mu.RUnlock()
	w.ScrollTo(x, y)
}

func (w *Window) setScrollLocked(x, y float64) bool {
	x = clamp(x, 0, w.scrollWidthLocked()-w.innerWidth)
	y = clamp(y, 0, w.scrollHeightLocked()-w.innerHeight)
	if x == w.scrollX && y == w.scrollY {
		return false
	}
	w.scrollX, w.scrollY = x, y
	return true
}

// Resize changes the viewport size and dispatches "resize". The scroll
// position is re-clamped to the new range.
func (w *Window) Resize(width, height float64) {
	w.mu.Lock()
	if width == w.innerWidth && height == w.innerHeight {
		w.mu.Unlock()
		return
	}
	w.innerWidth, w.innerHeight = width, height
	scrolled := w.setScrollLocked(w.scrollX, w.scrollY)
	w.mu.Unlock()

	w.DispatchEvent(&Event{Type: EventResize})
	if scrolled {
		w.DispatchEvent(&Event{Type: EventScroll})
	}
}

// TouchCapable reports whether the window has touch input.
func (w *Window) TouchCapable() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.touch
}

// SetTouchCapable sets the touch capability flag.
func (w *Window) SetTouchCapable(touch bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch = touch
}

// PointerMove moves the pointer over target, which may be nil when no
// element is hit. It dispatches mouseleave to elements the pointer left,
// mouseenter to elements it entered, then a bubbling mousemove.
func (w *Window) PointerMove(target *Element, x, y float64) {
	w.updateHover(target, x, y)
	w.dispatchPointer(EventMouseMove, target, x, y)
}

// PointerDown dispatches a bubbling mousedown at target.
func (w *Window) PointerDown(target *Element, x, y float64) {
	w.updateHover(target, x, y)
	w.dispatchPointer(EventMouseDown, target, x, y)
}

// PointerUp dispatches a bubbling mouseup at target.
func (w *Window) PointerUp(target *Element, x, y float64) {
	w.dispatchPointer(EventMouseUp, target, x, y)
}

// PointerExit handles the pointer leaving the window.
func (w *Window) PointerExit(x, y float64) {
	w.updateHover(nil, x, y)
}

// updateHover diffs the hovered ancestor chain against target's and
// dispatches the non-bubbling enter and leave events.
func (w *Window) updateHover(target *Element, x, y float64) {
	var chain []*Element
	for el := target; el != nil; el = el.parent {
		chain = append(chain, el)
	}

	w.mu.Lock()
	prev := w.hovered
	w.hovered = chain
	w.mu.Unlock()

	in := make(map[*Element]bool, len(chain))
	for _, el := range chain {
		in[el] = true
	}
	was := make(map[*Element]bool, len(prev))
	for _, el := range prev {
		was[el] = true
	}

	// Leave innermost first, enter outermost first.
	for _, el := range prev {
		if !in[el] {
			el.DispatchEvent(&Event{Type: EventMouseLeave, Target: el, ClientX: x, ClientY: y})
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if el := chain[i]; !was[el] {
			el.DispatchEvent(&Event{Type: EventMouseEnter, Target: el, ClientX: x, ClientY: y})
		}
	}
}

// dispatchPointer dispatches a bubbling event from target through its
// ancestors to the window.
func (w *Window) dispatchPointer(eventType string, target *Element, x, y float64) {
	ev := &Event{Type: eventType, Bubbles: true, Target: target, ClientX: x, ClientY: y}
	for el := target; el != nil; el = el.parent {
		el.DispatchEvent(ev)
		if ev.stopped {
			return
		}
	}
	w.DispatchEvent(ev)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
