package bootstrap

import (
	"github.com/chrisuehlinger/vibescroll/dom"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

// windowHost presents a dom.Window as a scrollbar.Host.
type windowHost struct {
	win *dom.Window
}

// NewHost adapts win to scrollbar.Host.
func NewHost(win *dom.Window) scrollbar.Host {
	return windowHost{win: win}
}

func (h windowHost) Extent(d scrollbar.Direction) float64 {
	if d == scrollbar.Horizontal {
		return h.win.InnerWidth()
	}
	return h.win.InnerHeight()
}

func (h windowHost) ContentExtent(d scrollbar.Direction) float64 {
	if d == scrollbar.Horizontal {
		return h.win.ScrollWidth()
	}
	return h.win.ScrollHeight()
}

func (h windowHost) ScrollOffset(d scrollbar.Direction) float64 {
	if d == scrollbar.Horizontal {
		return h.win.ScrollX()
	}
	return h.win.ScrollY()
}

func (h windowHost) ScrollTo(x, y float64) { h.win.ScrollTo(x, y) }

func (h windowHost) Window() scrollbar.EventSource {
	return eventSource{target: h.win.EventTarget}
}

func (h windowHost) Body() scrollbar.Element {
	body := h.win.Document().Body()
	if body == nil {
		body = h.win.Document().DocumentElement()
	}
	return NewTarget(body)
}

func (h windowHost) TouchCapable() bool { return h.win.TouchCapable() }

// eventSource subscribes pointer listeners on a DOM event target.
type eventSource struct {
	target *dom.EventTarget
}

func (s eventSource) Listen(eventType string, fn func(scrollbar.PointerEvent)) func() {
	id := s.target.AddEventListener(eventType, func(ev *dom.Event) {
		fn(scrollbar.PointerEvent{X: ev.ClientX, Y: ev.ClientY})
	})
	return func() { s.target.RemoveEventListener(eventType, id) }
}

// elementTarget presents a dom.Element as a scrollbar.Target.
type elementTarget struct {
	eventSource
	el *dom.Element
}

// NewTarget adapts el to scrollbar.Target.
func NewTarget(el *dom.Element) scrollbar.Target {
	return elementTarget{eventSource: eventSource{target: el.EventTarget}, el: el}
}

func (t elementTarget) SetStyle(property, value string) { t.el.Style().SetProperty(property, value) }

func (t elementTarget) Style(property string) string { return t.el.Style().GetPropertyValue(property) }

func (t elementTarget) SetAttribute(name, value string) { t.el.SetAttribute(name, value) }
