package js

import (
	"sort"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibescroll/clock"
	"github.com/chrisuehlinger/vibescroll/dom"
)

// timer represents a scheduled timer (setTimeout or setInterval).
type timer struct {
	id       int
	callback goja.Callable
	args     []any
	dueTime  time.Time
	interval time.Duration // 0 for setTimeout, >0 for setInterval
	cleared  bool
}

// timerManager manages setTimeout and setInterval timers. Timers fire
// only when polled by due, never on their own goroutine.
type timerManager struct {
	mu     sync.Mutex
	clock  clock.Clock
	timers map[int]*timer
	nextID int
}

func newTimerManager(clk clock.Clock) *timerManager {
	return &timerManager{
		clock:  clk,
		timers: make(map[int]*timer),
		nextID: 1,
	}
}

// schedule registers a timer. interval is 0 for a one-shot timer.
func (tm *timerManager) schedule(callback goja.Callable, delay, interval time.Duration, args []any) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tm.nextID
	tm.nextID++
	tm.timers[id] = &timer{
		id:       id,
		callback: callback,
		args:     args,
		dueTime:  tm.clock.Now().Add(delay),
		interval: interval,
	}
	return id
}

// clearTimer clears a timer by ID.
func (tm *timerManager) clearTimer(id int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if t, ok := tm.timers[id]; ok {
		t.cleared = true
		delete(tm.timers, id)
	}
}

// due returns the timers whose time has come, ordered by due time then id.
// The caller runs each one and then passes it to finish.
func (tm *timerManager) due() []*timer {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := tm.clock.Now()
	var dueTimers []*timer
	for _, t := range tm.timers {
		if !t.dueTime.After(now) {
			dueTimers = append(dueTimers, t)
		}
	}
	sort.Slice(dueTimers, func(i, j int) bool {
		if !dueTimers[i].dueTime.Equal(dueTimers[j].dueTime) {
			return dueTimers[i].dueTime.Before(dueTimers[j].dueTime)
		}
		return dueTimers[i].id < dueTimers[j].id
	})
	return dueTimers
}

// active reports whether t has not been cleared.
func (tm *timerManager) active(t *timer) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return !t.cleared
}

// finish reschedules an interval timer or removes a one-shot timer.
func (tm *timerManager) finish(t *timer) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if t.cleared {
		return
	}
	if t.interval > 0 {
		t.dueTime = tm.clock.Now().Add(t.interval)
		return
	}
	delete(tm.timers, t.id)
}

type frameCallback struct {
	id       int
	callback goja.Callable
}

// frameQueue holds requestAnimationFrame callbacks until the next frame.
type frameQueue struct {
	mu      sync.Mutex
	pending []frameCallback
	nextID  int
}

func newFrameQueue() *frameQueue {
	return &frameQueue{nextID: 1}
}

func (fq *frameQueue) request(callback goja.Callable) int {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	id := fq.nextID
	fq.nextID++
	fq.pending = append(fq.pending, frameCallback{id: id, callback: callback})
	return id
}

func (fq *frameQueue) cancel(id int) {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	for i, f := range fq.pending {
		if f.id == id {
			fq.pending = append(fq.pending[:i:i], fq.pending[i+1:]...)
			return
		}
	}
}

// take removes and returns every pending callback.
func (fq *frameQueue) take() []frameCallback {
	fq.mu.Lock()
	defer fq.mu.Unlock()
	frames := fq.pending
	fq.pending = nil
	return frames
}

// task is a window event waiting for its listener.
type task struct {
	callback goja.Callable
	event    *dom.Event
}

// taskQueue holds event listener calls raised while the VM may be busy.
type taskQueue struct {
	mu    sync.Mutex
	tasks []task
}

func (q *taskQueue) push(t task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

func (q *taskQueue) drain() []task {
	q.mu.Lock()
	defer q.mu.Unlock()
	tasks := q.tasks
	q.tasks = nil
	return tasks
}


// setupTimers creates setTimeout, setInterval, clearTimeout, clearInterval,
// requestAnimationFrame and cancelAnimationFrame.
func (r *Runtime) setupTimers() {
	schedule := func(call goja.FunctionCall, repeat bool) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}

		delay := call.Argument(1).ToInteger()
		if delay < 0 {
			delay = 0
		}
		// Intervals are clamped to 4ms like browsers do
		if repeat && delay < 4 {
			delay = 4
		}

		var args []any
		for _, arg := range call.Arguments[min(2, len(call.Arguments)):] {
			args = append(args, arg)
		}

		d := time.Duration(delay) * time.Millisecond
		var interval time.Duration
		if repeat {
			interval = d
		}
		return r.vm.ToValue(r.timers.schedule(callback, d, interval, args))
	}

	_ = r.vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		return schedule(call, false)
	})
	_ = r.vm.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		return schedule(call, true)
	})

	clearTimer := func(call goja.FunctionCall) goja.Value {
		r.timers.clearTimer(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	}
	_ = r.vm.Set("clearTimeout", clearTimer)
	_ = r.vm.Set("clearInterval", clearTimer)

	_ = r.vm.Set("requestAnimationFrame", func(call goja.FunctionCall) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return goja.Undefined()
		}
		return r.vm.ToValue(r.frames.request(callback))
	})
	_ = r.vm.Set("cancelAnimationFrame", func(call goja.FunctionCall) goja.Value {
		r.frames.cancel(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	})
}
