package js

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// ErrNotScroller is returned when a value has no callable scrollTo.
var ErrNotScroller = errors.New("js: value has no scrollTo method")

// ScrollDelegate forwards scroll commands to a script object's
// scrollTo(offset) method, such as a smooth-scrolling library instance.
type ScrollDelegate struct {
	rt       *Runtime
	this     goja.Value
	scrollTo goja.Callable
}

// Delegate adapts a script object to a scroll delegate.
func (r *Runtime) Delegate(v goja.Value) (*ScrollDelegate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, ErrNotScroller
	}
	fn, ok := goja.AssertFunction(obj.Get("scrollTo"))
	if !ok {
		return nil, ErrNotScroller
	}
	return &ScrollDelegate{rt: r, this: obj, scrollTo: fn}, nil
}

// GlobalDelegate adapts the global variable name to a scroll delegate.
func (r *Runtime) GlobalDelegate(name string) (*ScrollDelegate, error) {
	v := r.Global(name)
	if v == nil {
		return nil, fmt.Errorf("js: global %q is not defined", name)
	}
	d, err := r.Delegate(v)
	if err != nil {
		return nil, fmt.Errorf("global %q: %w", name, err)
	}
	return d, nil
}

// ScrollTo calls the object's scrollTo with offset. Script errors are
// recorded on the runtime.
func (d *ScrollDelegate) ScrollTo(offset float64) {
	d.rt.mu.Lock()
	defer d.rt.mu.Unlock()

	var err error
	defer d.rt.recoverInto(&err, "scrollTo panic")
	if _, err = d.scrollTo(d.this, d.rt.vm.ToValue(offset)); err != nil {
		d.rt.recordError(err)
	}
}
