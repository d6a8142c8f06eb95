// Package ui shows a page with its scrollbar in a Fyne window.
package ui

import (
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/chrisuehlinger/vibescroll/bootstrap"
	"github.com/chrisuehlinger/vibescroll/clock"
)

// Viewer is a desktop window driving a scrollbar binding once per
// display refresh.
type Viewer struct {
	app     fyne.App
	window  fyne.Window
	surface *pageSurface
	binding *bootstrap.Binding
	anim    *fyne.Animation
	clock   clock.Clock
	start   time.Time
	logger  *slog.Logger
}

// NewViewer creates a window sized like page's window.
func NewViewer(page *bootstrap.Page, binding *bootstrap.Binding, clk clock.Clock, logger *slog.Logger) *Viewer {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = slog.Default()
	}

	title := page.Window.Document().Title()
	if title == "" {
		title = "vibescroll"
	}

	a := app.New()
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(float32(page.Window.InnerWidth()), float32(page.Window.InnerHeight())))

	v := &Viewer{
		app:     a,
		window:  w,
		surface: newPageSurface(page.Window, binding.Controller().Direction(), binding.Container(), binding.Thumb()),
		binding: binding,
		clock:   clk,
		logger:  logger.With("component", "ui"),
	}
	w.SetContent(v.surface)
	page.Runtime.SetOnError(v.surface.setScriptError)
	return v
}

// Run shows the window and blocks until it is closed.
func (v *Viewer) Run() {
	v.start = v.clock.Now()

	// The animation only serves as a per-refresh callback; its progress
	// value is unused.
	v.anim = fyne.NewAnimation(time.Second, func(float32) { v.frame() })
	v.anim.Curve = fyne.AnimationLinear
	v.anim.RepeatCount = fyne.AnimationRepeatForever

	v.window.SetOnClosed(func() {
		v.anim.Stop()
		if err := v.binding.Close(); err != nil {
			v.logger.Warn("closing scrollbar", "error", err)
		}
	})

	v.anim.Start()
	v.logger.Info("viewer started")
	v.window.ShowAndRun()
}

func (v *Viewer) frame() {
	timestamp := float64(v.clock.Now().Sub(v.start)) / float64(time.Millisecond)
	v.binding.Frame(timestamp)
	v.surface.Refresh()
}
