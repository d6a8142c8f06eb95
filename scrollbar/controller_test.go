package scrollbar

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/vibescroll/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	host      *fakeHost
	container *fakeElement
	thumb     *fakeElement
	clock     *clock.FakeClock
	ctrl      *Controller
}

func newFixture(t *testing.T, viewport, content float64, mutate func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		host:      newFakeHost(viewport, content),
		container: newFakeElement(),
		thumb:     newFakeElement(),
		clock:     clock.Fake(epoch),
	}
	cfg := DefaultConfig()
	cfg.Container = f.container
	cfg.Thumb = f.thumb
	cfg.Clock = f.clock
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if mutate != nil {
		mutate(&cfg)
	}
	ctrl, err := New(f.host, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ctrl.Close() })
	f.ctrl = ctrl
	return f
}

func TestNewRejectsInvalidDirection(t *testing.T) {
	host := newFakeHost(1000, 4000)
	container := newFakeElement()
	thumb := newFakeElement()

	cfg := DefaultConfig()
	cfg.Container = container
	cfg.Thumb = thumb
	cfg.Direction = "diagonal"

	ctrl, err := New(host, cfg)
	require.Error(t, err)
	assert.Nil(t, ctrl)
	assert.True(t, errors.Is(err, ErrInvalidDirection))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "direction", cfgErr.Field)
	assert.Contains(t, err.Error(), "diagonal")

	assert.Zero(t, container.listenerCount())
	assert.Zero(t, host.window.listenerCount())
	assert.Empty(t, thumb.styles, "no styles are written on failure")
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
		target error
	}{
		{"missing container", func(c *Config) { c.Container = nil }, "container", ErrMissing},
		{"missing thumb", func(c *Config) { c.Thumb = nil }, "thumb", ErrMissing},
		{"negative fade", func(c *Config) { c.FadeDuration = -time.Second }, "fade duration", ErrNegativeDuration},
		{"negative min length", func(c *Config) { c.Policy.MinThumbLength = -1 }, "min thumb length", ErrNegativeLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Container = newFakeElement()
			cfg.Thumb = newFakeElement()
			tt.mutate(&cfg)

			_, err := New(newFakeHost(1000, 4000), cfg)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := New(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrMissing)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"":           Vertical,
		"vertical":   Vertical,
		"horizontal": Horizontal,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"both", "Horizontal", "VERTICAL", " vertical ", "horizontal\n"} {
		_, err := ParseDirection(in)
		assert.ErrorIs(t, err, ErrInvalidDirection, "%q", in)
	}
}

func TestNewRejectsDirectionSpellings(t *testing.T) {
	for _, dir := range []string{"Horizontal", "VERTICAL", " vertical ", "horizontal\n"} {
		t.Run(dir, func(t *testing.T) {
			host := newFakeHost(1000, 4000)
			container := newFakeElement()

			cfg := DefaultConfig()
			cfg.Container = container
			cfg.Thumb = newFakeElement()
			cfg.Direction = dir

			ctrl, err := New(host, cfg)
			assert.Nil(t, ctrl)
			assert.ErrorIs(t, err, ErrInvalidDirection)
			assert.Zero(t, container.listenerCount())
			assert.Zero(t, host.window.listenerCount())
		})
	}
}

func TestConstructionComputesGeometry(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)

	g := f.ctrl.Geometry()
	assert.InDelta(t, 0.25, g.ThumbRatio, 1e-9)
	assert.InDelta(t, 250.0, g.ThumbLength, 1e-9)
	assert.InDelta(t, 3000.0, g.MaxScroll, 1e-9)
	assert.True(t, g.Exists)
	assert.Equal(t, "25%", f.thumb.styles["height"])

	assert.Equal(t, 3, f.container.listenerCount())
	assert.Equal(t, 1, f.host.window.listenerCount(), "only the release listener is attached up front")
}

func TestOnFrameWritesTransform(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)
	f.host.scrollY = 1500

	f.ctrl.OnFrame()
	assert.Equal(t, "translate3d(0, 375px, 0)", f.thumb.styles["transform"])
	assert.Equal(t, 375.0, f.ctrl.Interaction().PrevTranslate)
}

func TestOnFrameHorizontal(t *testing.T) {
	f := newFixture(t, 1000, 4000, func(c *Config) { c.Direction = "horizontal" })
	f.host.width, f.host.contentWidth = 500, 2000
	f.ctrl.OnResize()
	f.host.scrollX = 750

	f.ctrl.OnFrame()
	assert.Equal(t, "25%", f.thumb.styles["width"])
	assert.Equal(t, "translate3d(187.5px, 0, 0)", f.thumb.styles["transform"])
}

func TestOnFrameHiddenWhenContentFits(t *testing.T) {
	for name, policy := range map[string]Policy{"simple": SimplePolicy, "refined": RefinedPolicy} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 1000, 800, func(c *Config) { c.Policy = policy })
			assert.False(t, f.ctrl.Geometry().Exists)

			f.ctrl.OnFrame()
			assert.Equal(t, "none", f.container.styles["display"])
			assert.Zero(t, f.thumb.writes["transform"])
			_, ok := f.container.attrs["data-visible"]
			assert.False(t, ok)
		})
	}
}

func TestRefinedPolicyFollowsContentGrowth(t *testing.T) {
	f := newFixture(t, 1000, 800, nil)
	f.ctrl.OnFrame()
	require.Equal(t, "none", f.container.styles["display"])

	// Content grows without a resize notification.
	f.host.contentHeight = 4000
	f.ctrl.OnFrame()

	assert.True(t, f.ctrl.Geometry().Exists)
	assert.NotContains(t, f.container.styles, "display")
	assert.Equal(t, "translate3d(0, 0px, 0)", f.thumb.styles["transform"])
}

func TestSimplePolicyIgnoresContentGrowthUntilResize(t *testing.T) {
	f := newFixture(t, 1000, 4000, func(c *Config) { c.Policy = SimplePolicy })
	f.host.contentHeight = 8000
	f.ctrl.OnFrame()
	assert.InDelta(t, 250.0, f.ctrl.Geometry().ThumbLength, 1e-9, "no per-frame recomputation")

	f.ctrl.OnResize()
	assert.InDelta(t, 125.0, f.ctrl.Geometry().ThumbLength, 1e-9)
}

// The simple scrollbar never clears a display: none written by the frame
// loop, even after the geometry says it exists again.
func TestSimplePolicyStaysHidden(t *testing.T) {
	f := newFixture(t, 1000, 800, func(c *Config) { c.Policy = SimplePolicy })
	f.ctrl.OnFrame()
	require.Equal(t, "none", f.container.styles["display"])

	f.host.contentHeight = 4000
	f.ctrl.OnResize()
	f.ctrl.OnFrame()

	assert.True(t, f.ctrl.Geometry().Exists)
	assert.Equal(t, "none", f.container.styles["display"])
	assert.Equal(t, "translate3d(0, 0px, 0)", f.thumb.styles["transform"], "the thumb is still synchronised")
}

func TestSimplePolicyDoesNotClampThumb(t *testing.T) {
	f := newFixture(t, 1000, 1_000_000, func(c *Config) { c.Policy = SimplePolicy })
	assert.InDelta(t, 1.0, f.ctrl.Geometry().ThumbLength, 1e-9)

	r := newFixture(t, 1000, 1_000_000, nil)
	assert.InDelta(t, float64(DefaultMinThumbLength), r.ctrl.Geometry().ThumbLength, 1e-9)
}

func TestFadeAfterMotion(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)

	f.host.scrollY = 1500
	f.ctrl.OnFrame()
	assert.Equal(t, "false", f.container.attrs["data-visible"], "first frame is not motion")

	f.host.scrollY = 1600
	f.ctrl.OnFrame()
	assert.Equal(t, "true", f.container.attrs["data-visible"])
	assert.True(t, f.ctrl.Visible())

	f.clock.Advance(150 * time.Millisecond)
	f.host.scrollY = 1700
	f.ctrl.OnFrame()
	assert.Equal(t, 1, f.clock.PendingCount(), "motion reschedules rather than stacking timers")

	// The first timer would have expired here; the reschedule keeps the
	// scrollbar visible.
	f.clock.Advance(100 * time.Millisecond)
	f.ctrl.OnFrame()
	assert.Equal(t, "true", f.container.attrs["data-visible"])

	f.clock.Advance(100 * time.Millisecond)
	assert.False(t, f.ctrl.Visible())
	f.ctrl.OnFrame()
	assert.Equal(t, "false", f.container.attrs["data-visible"])
}

func TestFadeDisabled(t *testing.T) {
	f := newFixture(t, 1000, 4000, func(c *Config) { c.FadeDuration = 0 })
	for _, offset := range []float64{100, 200, 300} {
		f.host.scrollY = offset
		f.ctrl.OnFrame()
	}
	assert.NotContains(t, f.container.attrs, "data-visible")
	assert.False(t, f.ctrl.Interaction().Moving)
	assert.Zero(t, f.clock.PendingCount())
	assert.Equal(t, 75.0, f.ctrl.Interaction().PrevTranslate)
}

func TestHoverKeepsVisible(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)
	f.container.fire(EventPointerEnter, PointerEvent{})
	f.ctrl.OnFrame()
	assert.Equal(t, "true", f.container.attrs["data-visible"])
	assert.Equal(t, CursorGrab, f.host.body.styles["cursor"])

	f.container.fire(EventPointerLeave, PointerEvent{})
	f.ctrl.OnFrame()
	assert.Equal(t, "false", f.container.attrs["data-visible"])
	assert.Equal(t, CursorAuto, f.host.body.styles["cursor"])
}

func TestDragScrollsNatively(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)
	f.host.scrollX = 12

	f.container.fire(EventPointerEnter, PointerEvent{})
	f.container.fire(EventPointerDown, PointerEvent{X: 790, Y: 300})

	require.Len(t, f.host.scrolls, 1)
	assert.Equal(t, 12.0, f.host.scrolls[0][0], "the other axis is kept")
	assert.InDelta(t, 700.0, f.host.scrolls[0][1], 1e-9)
	assert.Equal(t, "none", f.host.body.styles["user-select"])
	assert.Equal(t, CursorGrabbing, f.host.body.styles["cursor"])
	assert.Equal(t, 2, f.host.window.listenerCount(), "move listener attached for the drag")

	// The pointer leaves the container but the drag continues.
	f.container.fire(EventPointerLeave, PointerEvent{})
	assert.Equal(t, CursorGrabbing, f.host.body.styles["cursor"])
	f.host.window.fire(EventPointerMove, PointerEvent{X: 10, Y: 500})
	require.Len(t, f.host.scrolls, 2)
	assert.InDelta(t, 1500.0, f.host.scrolls[1][1], 1e-9)

	f.host.window.fire(EventPointerUp, PointerEvent{})
	assert.False(t, f.ctrl.Interaction().Dragging)
	assert.Equal(t, 1, f.host.window.listenerCount(), "move listener detached on release")
	assert.Equal(t, "auto", f.host.body.styles["user-select"])
	assert.Equal(t, CursorAuto, f.host.body.styles["cursor"])

	f.host.window.fire(EventPointerMove, PointerEvent{Y: 800})
	assert.Len(t, f.host.scrolls, 2, "no scrolling after release")
}

func TestDragUsesDelegate(t *testing.T) {
	var targets []float64
	f := newFixture(t, 1000, 4000, func(c *Config) {
		c.ScrollDelegate = ScrollFunc(func(offset float64) { targets = append(targets, offset) })
	})

	f.container.fire(EventPointerDown, PointerEvent{Y: 300})
	f.host.window.fire(EventPointerMove, PointerEvent{Y: 875})

	require.Len(t, targets, 2)
	assert.InDelta(t, 700.0, targets[0], 1e-9)
	assert.InDelta(t, 3000.0, targets[1], 1e-9)
	assert.Empty(t, f.host.scrolls)
}

func TestReleaseOnTouchHostKeepsStyles(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)
	f.host.touch = true

	f.container.fire(EventPointerDown, PointerEvent{Y: 300})
	f.host.window.fire(EventPointerUp, PointerEvent{})

	assert.False(t, f.ctrl.Interaction().Dragging)
	assert.Equal(t, "none", f.host.body.styles["user-select"])
	assert.Equal(t, CursorGrabbing, f.host.body.styles["cursor"])
	assert.Equal(t, 1, f.host.window.listenerCount())
}

func TestDelegateMayReenterController(t *testing.T) {
	var ctrl *Controller
	f := newFixture(t, 1000, 4000, func(c *Config) {
		c.ScrollDelegate = ScrollFunc(func(float64) { ctrl.OnFrame() })
	})
	ctrl = f.ctrl

	done := make(chan struct{})
	go func() {
		f.container.fire(EventPointerDown, PointerEvent{Y: 300})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scroll command deadlocked the controller")
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t, 1000, 4000, nil)

	f.host.scrollY = 100
	f.ctrl.OnFrame()
	f.container.fire(EventPointerDown, PointerEvent{Y: 300})
	f.host.scrollY = 700
	f.ctrl.OnFrame()
	require.Equal(t, 1, f.clock.PendingCount())

	require.NoError(t, f.ctrl.Close())
	assert.Zero(t, f.container.listenerCount())
	assert.Zero(t, f.host.window.listenerCount())
	assert.Zero(t, f.clock.PendingCount())

	writes := f.thumb.writes["transform"]
	f.ctrl.OnFrame()
	f.ctrl.OnResize()
	assert.Equal(t, writes, f.thumb.writes["transform"])
	assert.NoError(t, f.ctrl.Close())
}
