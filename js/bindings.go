package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibescroll/dom"
)

type windowListener struct {
	eventType string
	fn        goja.Value
	id        dom.ListenerID
}

// setupWindow makes the global object the window.
func (r *Runtime) setupWindow() {
	global := r.vm.GlobalObject()
	_ = global.Set("window", global)
	_ = global.Set("self", global)

	r.accessor(global, "innerWidth", func() any { return r.window.InnerWidth() })
	r.accessor(global, "innerHeight", func() any { return r.window.InnerHeight() })
	r.accessor(global, "scrollX", func() any { return r.window.ScrollX() })
	r.accessor(global, "scrollY", func() any { return r.window.ScrollY() })
	r.accessor(global, "pageXOffset", func() any { return r.window.ScrollX() })
	r.accessor(global, "pageYOffset", func() any { return r.window.ScrollY() })

	scrollTo := func(call goja.FunctionCall) goja.Value {
		x, y := r.scrollArgs(call, r.window.ScrollX(), r.window.ScrollY())
		r.window.ScrollTo(x, y)
		return goja.Undefined()
	}
	_ = global.Set("scrollTo", scrollTo)
	_ = global.Set("scroll", scrollTo)
	_ = global.Set("scrollBy", func(call goja.FunctionCall) goja.Value {
		dx, dy := r.scrollArgs(call, 0, 0)
		r.window.ScrollBy(dx, dy)
		return goja.Undefined()
	})

	var listeners []windowListener
	_ = global.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		eventType := call.Argument(0).String()
		fnValue := call.Argument(1)
		callback, ok := goja.AssertFunction(fnValue)
		if !ok {
			return goja.Undefined()
		}
		for _, l := range listeners {
			if l.eventType == eventType && l.fn.SameAs(fnValue) {
				return goja.Undefined()
			}
		}
		// Delivered from ProcessTimers: the event may be raised by a script
		// that still holds the VM.
		id := r.window.AddEventListener(eventType, func(ev *dom.Event) {
			r.tasks.push(task{callback: callback, event: ev})
		})
		listeners = append(listeners, windowListener{eventType: eventType, fn: fnValue, id: id})
		return goja.Undefined()
	})
	_ = global.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		eventType := call.Argument(0).String()
		fnValue := call.Argument(1)
		for i, l := range listeners {
			if l.eventType == eventType && l.fn.SameAs(fnValue) {
				r.window.RemoveEventListener(eventType, l.id)
				listeners = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
		return goja.Undefined()
	})
}

// scrollArgs reads either (x, y) or a {left, top} options object. Missing
// object members default to defX and defY.
func (r *Runtime) scrollArgs(call goja.FunctionCall, defX, defY float64) (x, y float64) {
	if opts, ok := call.Argument(0).(*goja.Object); ok {
		x, y = defX, defY
		if v := opts.Get("left"); v != nil && !goja.IsUndefined(v) {
			x = toNumber(v)
		}
		if v := opts.Get("top"); v != nil && !goja.IsUndefined(v) {
			y = toNumber(v)
		}
		return x, y
	}
	return toNumber(call.Argument(0)), toNumber(call.Argument(1))
}

// eventObject is the value passed to a window event listener.
func eventObject(ev *dom.Event) map[string]any {
	return map[string]any{
		"type":    ev.Type,
		"clientX": ev.ClientX,
		"clientY": ev.ClientY,
	}
}

// setupDocument creates the document global.
func (r *Runtime) setupDocument() {
	doc := r.window.Document()
	document := r.vm.NewObject()

	r.accessor(document, "title", func() any { return doc.Title() })
	r.accessor(document, "body", func() any { return r.elementValue(doc.Body()) })
	r.accessor(document, "documentElement", func() any { return r.elementValue(doc.DocumentElement()) })

	_ = document.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return r.elementValue(doc.GetElementByID(call.Argument(0).String()))
	})
	_ = document.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		el, err := doc.QuerySelector(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.elementValue(el)
	})
	_ = document.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		els, err := doc.QuerySelectorAll(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.elementList(els)
	})

	_ = r.vm.Set("document", document)
}

// elementValue returns the wrapper for el, creating it on first use so
// that the same element always maps to the same object.
func (r *Runtime) elementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := r.elements[el]; ok {
		return obj
	}

	obj := r.vm.NewObject()
	r.elements[el] = obj

	r.accessor(obj, "tagName", func() any { return el.TagName() })
	r.accessor(obj, "id", func() any { return el.ID() })
	r.accessor(obj, "className", func() any { return el.GetAttribute("class") })
	r.property(obj, "textContent",
		func() any { return el.TextContent() },
		func(v goja.Value) { el.SetTextContent(v.String()) })
	r.accessor(obj, "scrollWidth", func() any { return el.ScrollWidth() })
	r.accessor(obj, "scrollHeight", func() any { return el.ScrollHeight() })
	r.accessor(obj, "parentElement", func() any { return r.elementValue(el.Parent()) })

	_ = obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return r.vm.ToValue(el.GetAttribute(name))
	})
	_ = obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	_ = obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	_ = obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = obj.Set("matches", func(call goja.FunctionCall) goja.Value {
		ok, err := el.Matches(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.vm.ToValue(ok)
	})
	_ = obj.Set("closest", func(call goja.FunctionCall) goja.Value {
		found, err := el.Closest(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.elementValue(found)
	})
	_ = obj.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		found, err := el.QuerySelector(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.elementValue(found)
	})
	_ = obj.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		found, err := el.QuerySelectorAll(call.Argument(0).String())
		if err != nil {
			panic(r.vm.NewGoError(err))
		}
		return r.elementList(found)
	})
	_ = obj.Set("style", r.styleValue(el.Style()))
	return obj
}

func (r *Runtime) elementList(els []*dom.Element) goja.Value {
	values := make([]any, len(els))
	for i, el := range els {
		values[i] = r.elementValue(el)
	}
	return r.vm.NewArray(values...)
}

func (r *Runtime) styleValue(style *dom.CSSStyleDeclaration) *goja.Object {
	obj := r.vm.NewObject()
	_ = obj.Set("setProperty", func(call goja.FunctionCall) goja.Value {
		style.SetProperty(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	_ = obj.Set("getPropertyValue", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(style.GetPropertyValue(call.Argument(0).String()))
	})
	_ = obj.Set("removeProperty", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(style.RemoveProperty(call.Argument(0).String()))
	})
	_ = obj.DefineAccessorProperty("cssText",
		r.vm.ToValue(func(goja.FunctionCall) goja.Value { return r.vm.ToValue(style.CSSText()) }),
		r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			style.SetCSSText(call.Argument(0).String())
			return goja.Undefined()
		}),
		goja.FLAG_TRUE, goja.FLAG_TRUE)
	return obj
}

// accessor defines a read-only property computed by get.
func (r *Runtime) accessor(obj *goja.Object, name string, get func() any) {
	getter := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(get())
	})
	_ = obj.DefineAccessorProperty(name, getter, nil, goja.FLAG_TRUE, goja.FLAG_TRUE)
}

// property defines a writable property backed by get and set.
func (r *Runtime) property(obj *goja.Object, name string, get func() any, set func(goja.Value)) {
	getter := r.vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.vm.ToValue(get())
	})
	setter := r.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		set(call.Argument(0))
		return goja.Undefined()
	})
	_ = obj.DefineAccessorProperty(name, getter, setter, goja.FLAG_TRUE, goja.FLAG_TRUE)
}
