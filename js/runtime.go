// Package js runs page scripts with the goja JavaScript engine and exposes
// a small browser surface to them: window scrolling and sizing, element
// lookup and inline styles, timers, animation frames and a console.
package js

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibescroll/clock"
	"github.com/chrisuehlinger/vibescroll/dom"
)

// Runtime wraps a goja runtime bound to one window.
//
// goja is single-threaded; every entry into the VM holds mu. Window
// events raised while a script runs are queued and delivered by
// ProcessTimers, so a script that scrolls never re-enters the VM.
type Runtime struct {
	mu      sync.Mutex
	vm      *goja.Runtime
	window  *dom.Window
	clock   clock.Clock
	logger  *slog.Logger
	timers  *timerManager
	frames  *frameQueue
	tasks   *taskQueue
	errors  []error
	onError func(error)

	elements map[*dom.Element]*goja.Object
}

// NewRuntime creates a runtime whose globals reflect win. A nil clock
// uses the wall clock; a nil logger uses slog.Default.
func NewRuntime(win *dom.Window, clk clock.Clock, logger *slog.Logger) *Runtime {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runtime{
		vm:       goja.New(),
		window:   win,
		clock:    clk,
		logger:   logger.With("component", "js"),
		timers:   newTimerManager(clk),
		frames:   newFrameQueue(),
		tasks:    &taskQueue{},
		elements: make(map[*dom.Element]*goja.Object),
	}

	r.setupConsole()
	r.setupTimers()
	r.setupWindow()
	r.setupDocument()
	return r
}

// SetOnError sets a callback for script errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result exported to Go.
func (r *Runtime) Execute(code string) (result any, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverInto(&err, "script execution panic")

	v, err := r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
		return nil, err
	}
	return v.Export(), nil
}

// ExecuteScript compiles and runs a script. src names the script in
// error messages. Scripts run in sloppy mode.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverInto(&err, "script compilation panic in "+src)

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.recordError(err)
	}
	return err
}

// Errors returns every error recorded so far.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ProcessTimers delivers queued window events, then runs every due timer.
func (r *Runtime) ProcessTimers() {
	for _, t := range r.tasks.drain() {
		r.invoke(t.callback, eventObject(t.event))
	}
	for _, t := range r.timers.due() {
		if !r.timers.active(t) {
			continue
		}
		r.invoke(t.callback, t.args...)
		r.timers.finish(t)
	}
}

// RunAnimationFrames runs the callbacks requested before this call,
// passing timestamp in milliseconds. Callbacks requested while running
// wait for the next call.
func (r *Runtime) RunAnimationFrames(timestamp float64) {
	for _, f := range r.frames.take() {
		r.invoke(f.callback, timestamp)
	}
}

// Global returns a global variable, or nil when it is undefined.
func (r *Runtime) Global(name string) goja.Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vm.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v
}

// invoke calls fn with the VM locked, recording any error. Arguments are
// converted to VM values under the lock.
func (r *Runtime) invoke(fn goja.Callable, args ...any) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.recoverInto(&err, "callback panic")

	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = r.vm.ToValue(arg)
	}
	result, err = fn(goja.Undefined(), values...)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

func (r *Runtime) recoverInto(err *error, context string) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%s: %v", context, p)
		r.recordError(*err)
	}
}

// recordError must be called with mu held.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Warn("script error", "error", err)
	if r.onError != nil {
		r.onError(err)
	}
}

// setupConsole routes console output to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]slog.Level{
		"log":   slog.LevelInfo,
		"info":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, level := range levels {
		_ = console.Set(name, func(call goja.FunctionCall) goja.Value {
			r.logger.Log(context.Background(), level, formatArgs(call.Arguments), "source", "console")
			return goja.Undefined()
		})
	}
	_ = r.vm.Set("console", console)
}

func formatArgs(args []goja.Value) string {
	result := ""
	for i, arg := range args {
		if i > 0 {
			result += " "
		}
		result += formatValue(arg)
	}
	return result
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}

// toNumber converts v like a DOM numeric argument: undefined and NaN
// become 0.
func toNumber(v goja.Value) float64 {
	if v == nil || goja.IsUndefined(v) {
		return 0
	}
	f := v.ToFloat()
	if math.IsNaN(f) {
		return 0
	}
	return f
}
