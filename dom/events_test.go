package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrder(t *testing.T) {
	et := NewEventTarget()
	var order []int
	et.AddEventListener("ping", func(*Event) { order = append(order, 1) })
	et.AddEventListener("ping", func(*Event) { order = append(order, 2) })
	et.AddEventListener("pong", func(*Event) { order = append(order, 3) })

	et.DispatchEvent(&Event{Type: "ping"})
	assert.Equal(t, []int{1, 2}, order)
}

func TestRemoveDuringDispatch(t *testing.T) {
	et := NewEventTarget()
	var second ListenerID
	var calls []string

	et.AddEventListener("ping", func(*Event) {
		calls = append(calls, "first")
		et.RemoveEventListener("ping", second)
		et.AddEventListener("ping", func(*Event) { calls = append(calls, "added") })
	})
	second = et.AddEventListener("ping", func(*Event) { calls = append(calls, "second") })

	et.DispatchEvent(&Event{Type: "ping"})
	assert.Equal(t, []string{"first"}, calls, "removed listeners are skipped and new ones wait")
	assert.Equal(t, 2, et.ListenerCount("ping"))

	assert.False(t, et.RemoveEventListener("ping", second))
}
