package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockAdvance(t *testing.T) {
	c := Fake(epoch)
	require.True(t, c.Now().Equal(epoch))

	fired := 0
	c.AfterFunc(200*time.Millisecond, func() { fired++ })
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(199 * time.Millisecond)
	assert.Equal(t, 0, fired)

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.PendingCount())
	assert.True(t, c.Now().Equal(epoch.Add(200*time.Millisecond)))

	c.Advance(time.Second)
	assert.Equal(t, 1, fired, "one-shot timers fire once")
}

func TestFakeClockStop(t *testing.T) {
	c := Fake(epoch)
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second Stop reports nothing to stop")

	c.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	c := Fake(epoch)
	var order []int
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	c.Advance(5 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestFakeClockNonPositiveDelayRunsImmediately(t *testing.T) {
	c := Fake(epoch)
	fired := false
	timer := c.AfterFunc(0, func() { fired = true })
	assert.True(t, fired)
	assert.False(t, timer.Stop())
}

func TestTaskScheduleReplacesPendingRun(t *testing.T) {
	c := Fake(epoch)
	task := NewTask(c)

	var runs []uint64
	fire := func(seq uint64) {
		if task.Current(seq) {
			runs = append(runs, seq)
		}
	}

	task.Schedule(200*time.Millisecond, fire)
	c.Advance(150 * time.Millisecond)
	task.Schedule(200*time.Millisecond, fire)
	assert.Equal(t, 1, c.PendingCount(), "reschedule must not accumulate timers")

	c.Advance(150 * time.Millisecond)
	assert.Empty(t, runs, "the first run was cancelled by the reschedule")

	c.Advance(50 * time.Millisecond)
	require.Len(t, runs, 1)
	assert.False(t, task.Pending())
}

func TestTaskStaleRunIsNotCurrent(t *testing.T) {
	c := Fake(epoch)
	task := NewTask(c)

	var captured []uint64
	task.Schedule(time.Second, func(seq uint64) { captured = append(captured, seq) })
	c.Advance(time.Second)
	require.Len(t, captured, 1)
	stale := captured[0]

	// A run delivered after a newer Schedule must be rejected.
	task.Schedule(time.Second, func(uint64) {})
	assert.False(t, task.Current(stale))
	assert.True(t, task.Pending())
}

func TestTaskCancel(t *testing.T) {
	c := Fake(epoch)
	task := NewTask(c)

	fired := false
	task.Schedule(time.Second, func(seq uint64) { fired = task.Current(seq) })
	task.Cancel()
	assert.False(t, task.Pending())

	c.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, c.PendingCount())
}
