package scrollbar

import "sort"

type fakeElement struct {
	styles    map[string]string
	attrs     map[string]string
	writes    map[string]int
	listeners map[string]map[int]func(PointerEvent)
	nextID    int
}

func newFakeElement() *fakeElement {
	return &fakeElement{
		styles:    make(map[string]string),
		attrs:     make(map[string]string),
		writes:    make(map[string]int),
		listeners: make(map[string]map[int]func(PointerEvent)),
	}
}

func (e *fakeElement) SetStyle(property, value string) {
	e.writes[property]++
	if value == "" {
		delete(e.styles, property)
		return
	}
	e.styles[property] = value
}

func (e *fakeElement) Style(property string) string { return e.styles[property] }

func (e *fakeElement) SetAttribute(name, value string) { e.attrs[name] = value }

func (e *fakeElement) Listen(eventType string, fn func(PointerEvent)) func() {
	if e.listeners[eventType] == nil {
		e.listeners[eventType] = make(map[int]func(PointerEvent))
	}
	e.nextID++
	id := e.nextID
	e.listeners[eventType][id] = fn
	return func() { delete(e.listeners[eventType], id) }
}

func (e *fakeElement) fire(eventType string, ev PointerEvent) {
	ids := make([]int, 0, len(e.listeners[eventType]))
	for id := range e.listeners[eventType] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := e.listeners[eventType][id]; ok {
			fn(ev)
		}
	}
}

func (e *fakeElement) listenerCount() int {
	n := 0
	for _, m := range e.listeners {
		n += len(m)
	}
	return n
}

type fakeHost struct {
	width, height               float64
	contentWidth, contentHeight float64
	scrollX, scrollY            float64
	touch                       bool
	window                      *fakeElement
	body                        *fakeElement
	scrolls                     [][2]float64
}

func newFakeHost(viewport, content float64) *fakeHost {
	return &fakeHost{
		width:         800,
		height:        viewport,
		contentWidth:  800,
		contentHeight: content,
		window:        newFakeElement(),
		body:          newFakeElement(),
	}
}

func (h *fakeHost) Extent(d Direction) float64 {
	if d == Horizontal {
		return h.width
	}
	return h.height
}

func (h *fakeHost) ContentExtent(d Direction) float64 {
	if d == Horizontal {
		return h.contentWidth
	}
	return h.contentHeight
}

func (h *fakeHost) ScrollOffset(d Direction) float64 {
	if d == Horizontal {
		return h.scrollX
	}
	return h.scrollY
}

func (h *fakeHost) ScrollTo(x, y float64) {
	h.scrolls = append(h.scrolls, [2]float64{x, y})
	h.scrollX, h.scrollY = x, y
}

func (h *fakeHost) Window() EventSource { return h.window }
func (h *fakeHost) Body() Element       { return h.body }
func (h *fakeHost) TouchCapable() bool  { return h.touch }
