package smooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/vibescroll/dom"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

func newWindow(t *testing.T) *dom.Window {
	t.Helper()
	doc, err := dom.ParseHTML(`<body style="height: 4000px; width: 2000px"></body>`)
	require.NoError(t, err)
	return dom.NewWindow(doc, 800, 1000)
}

func TestScrollerConverges(t *testing.T) {
	win := newWindow(t)
	s := New(win, scrollbar.Vertical, 0.5)

	assert.False(t, s.Step(), "idle until a target is set")

	s.ScrollTo(1000)
	assert.True(t, s.Animating())

	require.True(t, s.Step())
	assert.Equal(t, 500.0, win.ScrollY())
	require.True(t, s.Step())
	assert.Equal(t, 750.0, win.ScrollY())

	frames := 2
	for s.Step() {
		frames++
		require.Less(t, frames, 100)
	}
	assert.Equal(t, 1000.0, win.ScrollY(), "snaps onto the target")
	assert.False(t, s.Animating())
	assert.Equal(t, 1000.0, s.Target())
}

func TestScrollerHorizontalKeepsOtherAxis(t *testing.T) {
	win := newWindow(t)
	win.ScrollTo(0, 300)
	s := New(win, scrollbar.Horizontal, 1)

	s.ScrollTo(600)
	assert.False(t, s.Step(), "a lerp of 1 arrives in one frame")
	assert.Equal(t, 600.0, win.ScrollX())
	assert.Equal(t, 300.0, win.ScrollY())
}

func TestScrollerStopsAtClamp(t *testing.T) {
	win := newWindow(t)
	s := New(win, scrollbar.Vertical, 0.9)

	s.ScrollTo(10000)
	for i := 0; i < 100 && s.Step(); i++ {
	}
	assert.False(t, s.Animating())
	assert.Equal(t, 3000.0, win.ScrollY())
}

func TestScrollerStop(t *testing.T) {
	win := newWindow(t)
	s := New(win, scrollbar.Vertical, 0)
	assert.Equal(t, DefaultLerp, s.lerp)

	s.ScrollTo(1000)
	s.Step()
	s.Stop()
	assert.False(t, s.Step())
	assert.Equal(t, win.ScrollY(), s.Target())
}
